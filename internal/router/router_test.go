package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nardchat/internal/auth"
	"nardchat/internal/chain"
	"nardchat/internal/handlers"
	"nardchat/internal/middleware"
	"nardchat/internal/models"
)

type anonResolver struct{}

func (anonResolver) Resolve(_ context.Context, wallet, _ string) *models.User {
	return &models.User{ID: wallet, WalletAddress: wallet, Role: models.RoleUser}
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	contract, err := chain.NewDiscussionStorage(chain.DefaultAddress, chain.BaseSepolia)
	require.NoError(t, err)
	nonces, err := auth.NewMemoryNonceStore(8)
	require.NoError(t, err)

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("k"))))
	r.Use(middleware.LoadUser(anonResolver{}, []byte("s")))
	RegisterRoutes(r, Deps{
		Story:        handlers.NewStoryHandler(nil),
		Vote:         handlers.NewVoteHandler(nil),
		Auth:         handlers.NewAuthHandler(nonces, anonResolver{}, nil, handlers.AuthConfig{AppName: "Nard.chat", JWTSecret: []byte("s")}),
		Admin:        handlers.NewAdminHandler(nil, contract),
		Notification: handlers.NewNotificationHandler(nil),
		User:         handlers.NewUserHandler(nil),
		RateLimiter:  middleware.NewRateLimiter(60),
		Origins:      []string{"http://localhost:3000"},
	})
	return r
}

func TestRoutes(t *testing.T) {
	r := newTestEngine(t)

	cases := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/api/badges", http.StatusOK},
		{http.MethodGet, "/api/contract", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/me", http.StatusUnauthorized},
		{http.MethodPost, "/api/stories", http.StatusUnauthorized},
		{http.MethodPost, "/api/comments/1/vote", http.StatusUnauthorized},
		{http.MethodGet, "/api/notifications", http.StatusUnauthorized},
		{http.MethodPost, "/api/admin/stories/1/archive", http.StatusUnauthorized},
		{http.MethodPost, "/api/auth/logout", http.StatusNoContent},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.want, w.Code, tc.method+" "+tc.path)
	}
}

func TestCORS(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/stories", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
