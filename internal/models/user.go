package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID            string      `gorm:"type:uuid;primaryKey" json:"id"`
	WalletAddress string      `gorm:"uniqueIndex;size:42;not null" json:"wallet_address"` // always lowercase
	Username      string      `gorm:"not null" json:"username"`
	Role          string      `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	Badges        []UserBadge `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	// Synthetic marks an identity derived from the wallet alone because the
	// user store could not be reached. It is never persisted.
	Synthetic bool `gorm:"-" json:"synthetic"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// BadgeLabels flattens the badge relation to its labels, skipping values
// outside the known set.
func (u *User) BadgeLabels() []string {
	labels := make([]string, 0, len(u.Badges))
	for _, b := range u.Badges {
		if b.BadgeType.Valid() {
			labels = append(labels, string(b.BadgeType))
		}
	}
	return labels
}

// PlaceholderAuthor stands in for an author whose row could not be joined.
func PlaceholderAuthor(authorID string) User {
	suffix := authorID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return User{ID: authorID, Username: "User" + suffix, Role: RoleUser}
}
