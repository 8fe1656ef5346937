package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeCommentStory NotificationType = "comment_story"
	NotificationTypeReplyComment NotificationType = "reply_comment"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    string           `gorm:"type:uuid;not null;index" json:"user_id"` // Receiver
	ActorID   string           `gorm:"type:uuid;index" json:"actor_id"`         // Sender
	Actor     User             `gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"actor"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	StoryID   uint             `gorm:"index" json:"story_id"`
	CommentID uint             `json:"comment_id"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
