package models

// UserType is a role category referenced by users.type_id.
type UserType struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"size:32;uniqueIndex;not null" json:"name"`
}

// TableName overrides the table name
func (UserType) TableName() string {
	return "user_types"
}

const (
	UserTypeCustomer = "customer"
	UserTypeOwner    = "owner"
)

// DefaultUserTypes is the closed set of role categories, with their fixed ids.
var DefaultUserTypes = []UserType{
	{ID: 1, Name: UserTypeCustomer},
	{ID: 2, Name: UserTypeOwner},
}
