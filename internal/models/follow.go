package models

import (
	"time"
)

// Follow represents a directed follow edge from follower to following.
// The composite primary key makes duplicate edges impossible at the
// storage layer; the check constraint rejects self-follows even if a
// handler guard is bypassed.
type Follow struct {
	FollowerID  int64     `gorm:"primaryKey;column:follower_id;check:chk_no_self_follow,follower_id <> following_id" json:"follower_id"`
	FollowingID int64     `gorm:"primaryKey;column:following_id" json:"following_id"`
	CreatedAt   time.Time `gorm:"not null;column:created_at" json:"created_at"`

	// Relationships
	Follower  *User `gorm:"foreignKey:FollowerID;references:ID" json:"-"`
	Following *User `gorm:"foreignKey:FollowingID;references:ID" json:"-"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "pulse_follows"
}
