package models

import (
	"time"
)

// Like represents a user liking a post. The composite primary key
// guarantees at most one like per (user, post) pair; concurrent
// duplicate inserts are resolved by conflict handling in the
// repository, never by a second row.
type Like struct {
	UserID    int64     `gorm:"primaryKey;column:user_id" json:"user_id"`
	PostID    int64     `gorm:"primaryKey;column:post_id" json:"post_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Post *Post `gorm:"foreignKey:PostID;references:ID" json:"-"`
}

// TableName specifies the table name for Like
func (Like) TableName() string {
	return "pulse_likes"
}
