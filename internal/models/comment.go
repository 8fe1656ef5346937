package models

import (
	"time"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoryID   uint      `gorm:"not null;index" json:"story_id"`
	Story     Story     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ParentID  *uint     `gorm:"index" json:"parent_id"` // Nullable for root comments
	Content   string    `gorm:"type:text;not null" json:"content"`
	Upvotes   int       `gorm:"default:0" json:"upvotes"`
	Downvotes int       `gorm:"default:0" json:"downvotes"`
	VoteScore int       `gorm:"default:0" json:"vote_score"` // upvotes - downvotes
	AuthorID  string    `gorm:"type:uuid;not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Filled by tree reconstruction only.
	Replies []*Comment `gorm:"-" json:"replies"`
}
