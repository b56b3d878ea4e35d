package models

import (
	"time"
)

// Notification records an actor's action directed at a recipient.
// The target is a tagged (kind, id) pair rather than a polymorphic
// reference; resolution happens per kind at render time.
type Notification struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	RecipientID int64     `gorm:"not null;index;column:recipient_id" json:"recipient_id"`
	ActorID     int64     `gorm:"not null;column:actor_id" json:"actor_id"`
	Verb        string    `gorm:"type:varchar(64);not null;column:verb" json:"verb"`
	TargetKind  string    `gorm:"type:varchar(16);not null;column:target_kind" json:"target_kind"`
	TargetID    int64     `gorm:"not null;column:target_id" json:"target_id"`
	Read        bool      `gorm:"not null;default:false;index;column:read" json:"read"`
	CreatedAt   time.Time `gorm:"not null;index;column:created_at" json:"created_at"`

	// Relationships
	Recipient *User `gorm:"foreignKey:RecipientID;references:ID" json:"-"`
	Actor     *User `gorm:"foreignKey:ActorID;references:ID" json:"-"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "pulse_notifs"
}

// Notification verbs
const (
	VerbLikedPost     = "liked your post"
	VerbCommentedPost = "commented on your post"
	VerbFollowed      = "started following you"
)

// Notification target kinds
const (
	TargetPost    = "post"
	TargetComment = "comment"
	TargetUser    = "user"
)
