// Package identity reconciles a wallet address with a stable user record.
package identity

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"nardchat/internal/models"
)

// IdentityStore finds and creates users keyed by canonical wallet address.
// FindByWallet returns an error wrapping store.ErrNotFound when the wallet is
// unknown.
type IdentityStore interface {
	FindByWallet(ctx context.Context, wallet string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

// Source tells which path produced an identity.
type Source string

const (
	SourceStored    Source = "stored"
	SourceCreated   Source = "created"
	SourceSynthetic Source = "synthetic"
)

// Canonical trims and lowercases a wallet address, adding the 0x prefix to
// valid hex addresses that lack it. Every lookup and comparison goes through it.
func Canonical(wallet string) string {
	wallet = strings.TrimSpace(wallet)
	if common.IsHexAddress(wallet) {
		return strings.ToLower(common.HexToAddress(wallet).Hex())
	}
	return strings.ToLower(wallet)
}

// DefaultUsername is "User" followed by the last 8 characters of the address.
func DefaultUsername(wallet string) string {
	suffix := wallet
	if len(suffix) > 8 {
		suffix = suffix[len(suffix)-8:]
	}
	return "User" + suffix
}

// SyntheticID is "wallet_" followed by the 8 characters after the 0x prefix.
func SyntheticID(wallet string) string {
	body := strings.TrimPrefix(wallet, "0x")
	if len(body) > 8 {
		body = body[:8]
	}
	return "wallet_" + body
}

// AdminList is the set of canonical admin addresses.
type AdminList map[string]struct{}

func NewAdminList(wallets []string) AdminList {
	l := make(AdminList, len(wallets))
	for _, w := range wallets {
		if c := Canonical(w); c != "" {
			l[c] = struct{}{}
		}
	}
	return l
}

func (l AdminList) Contains(wallet string) bool {
	_, ok := l[Canonical(wallet)]
	return ok
}

// RoleFor returns admin for listed wallets, user otherwise.
func (l AdminList) RoleFor(wallet string) string {
	if l.Contains(wallet) {
		return models.RoleAdmin
	}
	return models.RoleUser
}
