package store

import (
	"context"

	"gorm.io/gorm"

	"nardchat/internal/models"
)

type Users struct {
	db *gorm.DB
}

// FindByWallet expects a canonical (lowercase) address.
func (s *Users) FindByWallet(ctx context.Context, wallet string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).
		Preload("Badges").
		Where("wallet_address = ?", wallet).
		First(&u).Error
	if err != nil {
		return nil, wrap("find user by wallet", err)
	}
	return &u, nil
}

// Create inserts u. It never updates an existing row; a duplicate wallet
// fails on the unique index.
func (s *Users) Create(ctx context.Context, u *models.User) error {
	return wrap("create user", s.db.WithContext(ctx).Create(u).Error)
}
