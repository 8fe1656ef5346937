package models

import (
	"time"
)

type Story struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	Content    string    `gorm:"type:text" json:"content"`
	AuthorID   string    `gorm:"type:uuid;not null;index" json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	IsArchived bool      `gorm:"default:false" json:"is_archived"`
	IsFrozen   bool      `gorm:"default:false" json:"is_frozen"`
	Score      float64   `gorm:"default:0;index" json:"score"` // hot ranking, maintained by RankingService
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	CommentCount int `gorm:"-" json:"comment_count"`
}
