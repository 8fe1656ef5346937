// Package store holds the gorm repositories. Each takes the *gorm.DB handle
// explicitly.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("store: not found")

type Store struct {
	Users         *Users
	Stories       *Stories
	Comments      *Comments
	Votes         *Votes
	Notifications *Notifications
}

func New(db *gorm.DB) *Store {
	return &Store{
		Users:         &Users{db: db},
		Stories:       &Stories{db: db},
		Comments:      &Comments{db: db},
		Votes:         &Votes{db: db},
		Notifications: &Notifications{db: db},
	}
}

// wrap maps gorm's not-found onto ErrNotFound and annotates other errors.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
