package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"nardchat/internal/auth"
	"nardchat/internal/identity"
	"nardchat/internal/logger"
	"nardchat/internal/middleware"
	"nardchat/internal/models"
)

type UnreadCounter interface {
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

type AuthConfig struct {
	AppName   string
	JWTSecret []byte
	JWTTTL    time.Duration
}

type AuthHandler struct {
	nonces   auth.NonceStore
	resolver middleware.Resolver
	unread   UnreadCounter
	cfg      AuthConfig
}

func NewAuthHandler(nonces auth.NonceStore, resolver middleware.Resolver, unread UnreadCounter, cfg AuthConfig) *AuthHandler {
	return &AuthHandler{nonces: nonces, resolver: resolver, unread: unread, cfg: cfg}
}

type challengeRequest struct {
	Address string `json:"address" binding:"required"`
}

// Challenge 生成一次性 nonce 和待签名消息
func (h *AuthHandler) Challenge(c *gin.Context) {
	var req challengeRequest
	if err := c.ShouldBindJSON(&req); err != nil || !common.IsHexAddress(req.Address) {
		badRequest(c, "invalid address")
		return
	}
	addr := identity.Canonical(req.Address)

	nonce, err := auth.GenerateNonce(c.Request.Context(), h.nonces, addr)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"nonce":   nonce,
		"message": auth.ChallengeMessage(h.cfg.AppName, nonce),
	})
}

type verifyRequest struct {
	Address   string `json:"address" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	Username  string `json:"username"`
}

// Verify 校验签名，同步钱包用户并建立会话
func (h *AuthHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || !common.IsHexAddress(req.Address) {
		badRequest(c, "address and signature are required")
		return
	}
	addr := identity.Canonical(req.Address)

	nonce, err := h.nonces.Take(c.Request.Context(), addr)
	if err != nil {
		if !errors.Is(err, auth.ErrNonceNotFound) {
			logger.Log.Error().Err(err).Str("wallet", addr).Msg("nonce lookup failed")
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "challenge expired, request a new one"})
		return
	}

	if err := auth.VerifySignature(addr, auth.ChallengeMessage(h.cfg.AppName, nonce), req.Signature); err != nil {
		logger.Log.Warn().Err(err).Str("wallet", addr).Msg("signature rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	user := h.resolver.Resolve(c.Request.Context(), addr, req.Username)

	session := sessions.Default(c)
	session.Set(middleware.SessionWalletKey, addr)
	if err := session.Save(); err != nil {
		logger.Log.Warn().Err(err).Msg("save session failed")
	}

	token, err := auth.IssueToken(addr, h.cfg.JWTSecret, h.cfg.JWTTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  h.meView(c.Request.Context(), user),
	})
}

type meView struct {
	authorView
	Synthetic   bool  `json:"synthetic"`
	UnreadCount int64 `json:"unread_count"`
}

func (h *AuthHandler) meView(ctx context.Context, u *models.User) meView {
	v := meView{authorView: newAuthorView(*u), Synthetic: u.Synthetic}
	if !u.Synthetic && h.unread != nil {
		n, err := h.unread.UnreadCount(ctx, u.ID)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("unread count failed")
		}
		v.UnreadCount = n
	}
	return v
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, h.meView(c.Request.Context(), middleware.CurrentUser(c)))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		logger.Log.Warn().Err(err).Msg("clear session failed")
	}
	c.Status(http.StatusNoContent)
}
