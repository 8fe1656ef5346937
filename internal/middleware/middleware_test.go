package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nardchat/internal/auth"
	"nardchat/internal/models"
)

var testSecret = []byte("test-secret")

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, wallet, _ string) *models.User {
	role := models.RoleUser
	if wallet == "0xadmin" {
		role = models.RoleAdmin
	}
	return &models.User{ID: "id-" + wallet, WalletAddress: wallet, Role: role}
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("k"))))
	r.Use(LoadUser(stubResolver{}, testSecret))
	return r
}

func bearer(t *testing.T, wallet string) string {
	t.Helper()
	tok, err := auth.IssueToken(wallet, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestLoadUser_Bearer(t *testing.T) {
	r := newEngine()
	r.GET("/me", func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			c.Status(http.StatusNoContent)
			return
		}
		c.String(http.StatusOK, u.ID)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearer(t, "0xabc"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "id-0xabc", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLoadUser_Session(t *testing.T) {
	r := newEngine()
	r.POST("/login", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set(SessionWalletKey, "0xabc")
		_ = s.Save()
		c.Status(http.StatusOK)
	})
	r.GET("/me", AuthRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentWallet(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0xabc", w.Body.String())
}

func TestAuthRequired(t *testing.T) {
	r := newEngine()
	r.GET("/private", AuthRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"authentication required"}`, w.Body.String())
}

func TestAdminRequired(t *testing.T) {
	r := newEngine()
	r.GET("/admin", AuthRequired(), AdminRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for wallet, want := range map[string]int{"0xadmin": http.StatusOK, "0xabc": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", bearer(t, wallet))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, wallet)
	}
}

func TestRateLimiter(t *testing.T) {
	r := newEngine()
	r.POST("/write", NewRateLimiter(6).Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(wallet string) int {
		req := httptest.NewRequest(http.MethodPost, "/write", nil)
		req.Header.Set("Authorization", bearer(t, wallet))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("0xabc"))
	assert.Equal(t, http.StatusTooManyRequests, do("0xabc"))
	assert.Equal(t, http.StatusOK, do("0xdef"))
}
