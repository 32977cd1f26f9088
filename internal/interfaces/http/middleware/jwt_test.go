package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolms/backend/internal/infrastructure/auth"
	"github.com/schoolms/backend/internal/infrastructure/config"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-used-only-in-unit-tests!!",
		AccessTokenExpiration: time.Hour,
		Issuer:                "schoolms-test",
	})
}

func issueToken(t *testing.T, svc *auth.JWTService, role string) string {
	t.Helper()
	token, err := svc.GenerateToken(uuid.New(), "user@school.af", role)
	require.NoError(t, err)
	return token.AccessToken
}

func newAuthedRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthWithConfig(cfg))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetJWTUserID(c), "role": GetJWTRole(c)})
	})
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	svc := testJWTService()
	router := newAuthedRouter(DefaultJWTConfig(svc))

	t.Run("valid token passes and claims land in context", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, svc, "staff"))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"staff"`)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, "Token abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not-a-jwt")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})

	t.Run("skip path needs no token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestJWTAuth_Blacklist(t *testing.T) {
	svc := testJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = blacklist
	router := newAuthedRouter(cfg)

	tokenString := issueToken(t, svc, "admin")
	claims, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+tokenString)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestRequireAdmin(t *testing.T) {
	svc := testJWTService()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthWithConfig(DefaultJWTConfig(svc)))
	r.DELETE("/admin-only", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("admin allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/admin-only", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, svc, "admin"))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("staff forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/admin-only", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, svc, "staff"))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")
	})
}
