package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"nardchat/internal/identity"
	"nardchat/internal/models"
	"nardchat/internal/store"
)

type UserLookup interface {
	FindByWallet(ctx context.Context, wallet string) (*models.User, error)
}

type UserHandler struct {
	users UserLookup
}

func NewUserHandler(users UserLookup) *UserHandler {
	return &UserHandler{users: users}
}

// Profile 用户公开资料，只查询不创建
func (h *UserHandler) Profile(c *gin.Context) {
	wallet := c.Param("wallet")
	if !common.IsHexAddress(wallet) {
		badRequest(c, "invalid wallet")
		return
	}

	u, err := h.users.FindByWallet(c.Request.Context(), identity.Canonical(wallet))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(c, "user")
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": newAuthorView(*u)})
}

// Badges lists every badge with its display info.
func (h *UserHandler) Badges(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"badges": models.AllBadges})
}
