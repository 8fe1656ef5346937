package models

import (
	"time"
)

// Vote is one wallet's up or down vote on a comment.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_comment_vote" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_user_comment_vote;index" json:"comment_id"`
	Value     int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt time.Time `json:"created_at"`
}
