package models

import (
	"time"
)

// User represents a registered account
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Username     string    `gorm:"type:varchar(32);not null;uniqueIndex:pulse_users_ux1;column:username" json:"username"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:pulse_users_ux2;column:email" json:"email"`
	PasswordHash string    `gorm:"type:varchar(100);not null;column:password_hash" json:"-"`
	Bio          string    `gorm:"type:varchar(500);not null;default:'';column:bio" json:"bio"`
	CreatedAt    time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "pulse_users"
}

// Profile is the public projection of a user with derived social counts.
type Profile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Bio       string    `json:"bio"`
	Followers int64     `json:"followers"`
	Following int64     `json:"following"`
	CreatedAt time.Time `json:"created_at"`
}
