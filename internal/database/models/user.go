package models

import (
	"time"
)

// User is the identity record owned by this service. Rows are never deleted.
type User struct {
	ID           uint        `gorm:"primarykey" json:"id"`
	Name         string      `gorm:"not null" json:"name"`
	Email        string      `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"column:password_hash;not null" json:"-"`
	Address      string      `gorm:"not null;default:''" json:"address"`
	TypeID       uint        `gorm:"not null;index" json:"type_id"`
	Type         UserType    `gorm:"foreignKey:TypeID" json:"type"`
	RestaurantID *uint       `gorm:"index" json:"restaurant_id,omitempty"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// HasRestaurant reports whether the user has been linked to a restaurant
func (u *User) HasRestaurant() bool {
	return u.RestaurantID != nil
}
