package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"nardchat/internal/auth"
	"nardchat/internal/models"
)

const (
	CheckUserKey = "user"
	WalletKey    = "wallet"

	// SessionWalletKey is the cookie session field holding the signed-in wallet.
	SessionWalletKey = "wallet"
)

type Resolver interface {
	Resolve(ctx context.Context, wallet, username string) *models.User
}

// LoadUser finds the caller's wallet from the bearer token or the session
// and puts the reconciled user on the context.
func LoadUser(resolver Resolver, jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallet := walletFromRequest(c, jwtSecret)
		if wallet != "" {
			c.Set(WalletKey, wallet)
			c.Set(CheckUserKey, resolver.Resolve(c.Request.Context(), wallet, ""))
		}
		c.Next()
	}
}

func walletFromRequest(c *gin.Context, jwtSecret []byte) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		addr, err := auth.ParseToken(strings.TrimPrefix(h, "Bearer "), jwtSecret)
		if err != nil {
			return ""
		}
		return addr
	}

	session := sessions.Default(c)
	if w, ok := session.Get(SessionWalletKey).(string); ok {
		return w
	}
	return ""
}

// CurrentUser returns the user set by LoadUser, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(CheckUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// CurrentWallet returns the canonical wallet set by LoadUser.
func CurrentWallet(c *gin.Context) string {
	return c.GetString(WalletKey)
}

// AuthRequired ensures a wallet is signed in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentUser(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}
