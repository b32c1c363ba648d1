package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finapp/backend/internal/infrastructure/auth"
	"github.com/finapp/backend/internal/infrastructure/config"
)

func newJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key",
		Issuer:          "finapp-test",
		TokenExpiration: expiration,
	})
}

func newAuthRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(jwtService, nil))
	r.GET("/protected", func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String()})
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	userID := uuid.New()
	roleID := uuid.New()

	t.Run("valid token passes and exposes identity", func(t *testing.T) {
		jwtService := newJWTService(time.Hour)
		token, err := jwtService.GenerateToken(auth.GenerateTokenInput{
			UserID: userID,
			RoleID: roleID,
			Email:  "jane@example.com",
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token.AccessToken)
		newAuthRouter(jwtService).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})

	t.Run("missing header rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		newAuthRouter(newJWTService(time.Hour)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, "Basic abc123")
		newAuthRouter(newJWTService(time.Hour)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token reports TOKEN_EXPIRED", func(t *testing.T) {
		jwtService := newJWTService(-time.Minute)
		token, err := jwtService.GenerateToken(auth.GenerateTokenInput{
			UserID: userID,
			RoleID: roleID,
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token.AccessToken)
		newAuthRouter(newJWTService(time.Hour)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		other := auth.NewJWTService(config.JWTConfig{
			Secret:          "different-secret",
			Issuer:          "finapp-test",
			TokenExpiration: time.Hour,
		})
		token, err := other.GenerateToken(auth.GenerateTokenInput{
			UserID: userID,
			RoleID: roleID,
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token.AccessToken)
		newAuthRouter(newJWTService(time.Hour)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
