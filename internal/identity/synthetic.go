package identity

import (
	"context"

	"nardchat/internal/models"
)

// SyntheticStore derives an identity from the wallet alone. It never fails
// and never persists anything.
type SyntheticStore struct {
	Admins AdminList
}

// Derive builds the identity for wallet. An empty username falls back to
// DefaultUsername.
func (s SyntheticStore) Derive(wallet, username string) *models.User {
	wallet = Canonical(wallet)
	if username == "" {
		username = DefaultUsername(wallet)
	}
	return &models.User{
		ID:            SyntheticID(wallet),
		WalletAddress: wallet,
		Username:      username,
		Role:          s.Admins.RoleFor(wallet),
		Synthetic:     true,
	}
}

func (s SyntheticStore) FindByWallet(_ context.Context, wallet string) (*models.User, error) {
	return s.Derive(wallet, ""), nil
}

// Create fills u in place with the derived id and role.
func (s SyntheticStore) Create(_ context.Context, u *models.User) error {
	d := s.Derive(u.WalletAddress, u.Username)
	*u = *d
	return nil
}
