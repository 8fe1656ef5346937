package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"nardchat/internal/models"
	"nardchat/internal/utils"
)

const (
	SortNew = "new"
	SortHot = "hot"
)

type Stories struct {
	db *gorm.DB
}

func (s *Stories) List(ctx context.Context, limit, offset int, sort string) ([]models.Story, error) {
	order := "created_at DESC"
	if sort == SortHot {
		order = "score DESC, created_at DESC"
	}

	var stories []models.Story
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Author.Badges").
		Order(order).
		Limit(limit).
		Offset(offset).
		Find(&stories).Error
	if err != nil {
		return nil, wrap("list stories", err)
	}

	if err := s.fillCommentCounts(ctx, stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (s *Stories) fillCommentCounts(ctx context.Context, stories []models.Story) error {
	if len(stories) == 0 {
		return nil
	}
	ids := make([]uint, len(stories))
	for i := range stories {
		ids[i] = stories[i].ID
	}

	var rows []struct {
		StoryID uint
		Count   int
	}
	err := s.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("story_id, count(*) as count").
		Where("story_id IN ?", ids).
		Group("story_id").
		Scan(&rows).Error
	if err != nil {
		return wrap("count comments", err)
	}

	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.StoryID] = r.Count
	}
	for i := range stories {
		stories[i].CommentCount = counts[stories[i].ID]
	}
	return nil
}

// Get loads the story with its author and the author's badges.
func (s *Stories) Get(ctx context.Context, id uint) (*models.Story, error) {
	var story models.Story
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Author.Badges").
		First(&story, id).Error
	if err != nil {
		return nil, wrap("get story", err)
	}
	return &story, nil
}

// GetPlain loads the row alone; Author is left zero.
func (s *Stories) GetPlain(ctx context.Context, id uint) (*models.Story, error) {
	var story models.Story
	if err := s.db.WithContext(ctx).First(&story, id).Error; err != nil {
		return nil, wrap("get story row", err)
	}
	return &story, nil
}

func (s *Stories) Create(ctx context.Context, story *models.Story) error {
	return wrap("create story", s.db.WithContext(ctx).Create(story).Error)
}

func (s *Stories) UpdateScore(ctx context.Context, id uint, score float64) error {
	err := s.db.WithContext(ctx).
		Model(&models.Story{}).
		Where("id = ?", id).
		UpdateColumn("score", score).Error
	return wrap("update story score", err)
}

// RankInput gathers what the hot score needs for one story.
func (s *Stories) RankInput(ctx context.Context, id uint) (utils.RankInput, error) {
	var in utils.RankInput

	var story models.Story
	err := s.db.WithContext(ctx).Select("id", "created_at").First(&story, id).Error
	if err != nil {
		return in, wrap("rank input", err)
	}
	in.CreatedAt = story.CreatedAt

	var agg struct {
		Comments  int
		Upvotes   int
		Downvotes int
	}
	err = s.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("count(*) as comments, coalesce(sum(upvotes), 0) as upvotes, coalesce(sum(downvotes), 0) as downvotes").
		Where("story_id = ?", id).
		Scan(&agg).Error
	if err != nil {
		return in, wrap("rank input", err)
	}
	in.Comments = agg.Comments
	in.Upvotes = agg.Upvotes
	in.Downvotes = agg.Downvotes
	return in, nil
}

// RecentIDs lists stories created since the given time.
func (s *Stories) RecentIDs(ctx context.Context, since time.Time) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.Story{}).
		Where("created_at >= ?", since).
		Pluck("id", &ids).Error
	return ids, wrap("recent stories", err)
}
