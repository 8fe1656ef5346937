package store

import (
	"context"

	"gorm.io/gorm"

	"nardchat/internal/models"
)

type Comments struct {
	db *gorm.DB
}

// ListByStory returns the story's comments in creation order with authors
// and badges expanded.
func (s *Comments) ListByStory(ctx context.Context, storyID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Author.Badges").
		Where("story_id = ?", storyID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, wrap("list comments", err)
	}
	return comments, nil
}

// ListByStoryPlain is ListByStory without the author relation.
func (s *Comments) ListByStoryPlain(ctx context.Context, storyID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("story_id = ?", storyID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, wrap("list comment rows", err)
	}
	return comments, nil
}

func (s *Comments) Get(ctx context.Context, id uint) (*models.Comment, error) {
	var c models.Comment
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, wrap("get comment", err)
	}
	return &c, nil
}

func (s *Comments) Create(ctx context.Context, c *models.Comment) error {
	return wrap("create comment", s.db.WithContext(ctx).Create(c).Error)
}
