package domain

import "time"

// User Model
type User struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"id"`         // UUID primary key
	Name      string    `gorm:"size:255;not null" json:"name"`              // Display name
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"` // Unique email
	Password  string    `gorm:"not null" json:"-"`                          // Hashed password
	CreatedAt time.Time `json:"created_at"`                                 // Timestamp of creation
	UpdatedAt time.Time `json:"updated_at"`                                 // Timestamp of last update
}
