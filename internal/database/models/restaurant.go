package models

import "time"

// Restaurant is owned by the restaurant service; identity only reads it to
// validate links from users.restaurant_id.
type Restaurant struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Restaurant) TableName() string {
	return "restaurants"
}
