package store

import (
	"context"

	"gorm.io/gorm"

	"nardchat/internal/models"
)

type Notifications struct {
	db *gorm.DB
}

func (s *Notifications) Create(ctx context.Context, n *models.Notification) error {
	return wrap("create notification", s.db.WithContext(ctx).Create(n).Error)
}

// ListForUser returns the newest notifications first, with actors expanded.
func (s *Notifications) ListForUser(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	var list []models.Notification
	err := s.db.WithContext(ctx).
		Preload("Actor").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, wrap("list notifications", err)
	}
	return list, nil
}

func (s *Notifications) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, wrap("count unread notifications", err)
}

// MarkRead only touches notifications owned by userID.
func (s *Notifications) MarkRead(ctx context.Context, userID string, id uint) error {
	res := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return wrap("mark notification read", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("mark notification read", gorm.ErrRecordNotFound)
	}
	return nil
}

func (s *Notifications) MarkAllRead(ctx context.Context, userID string) error {
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	return wrap("mark all notifications read", err)
}

func (s *Notifications) Delete(ctx context.Context, userID string, id uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	if res.Error != nil {
		return wrap("delete notification", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("delete notification", gorm.ErrRecordNotFound)
	}
	return nil
}
