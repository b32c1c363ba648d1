package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finapp/backend/internal/infrastructure/auth"
)

type fakeChecker struct {
	granted bool
	err     error

	roleID   uuid.UUID
	resource string
	action   string
}

func (f *fakeChecker) Check(ctx context.Context, roleID uuid.UUID, resource, action string) (bool, error) {
	f.roleID = roleID
	f.resource = resource
	f.action = action
	return f.granted, f.err
}

func newPermissionRouter(checker PermissionChecker, jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(jwtService, nil))
	r.GET("/invoices", RequirePermission(checker, "invoices", "read", nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequirePermission(t *testing.T) {
	jwtService := newJWTService(time.Hour)
	roleID := uuid.New()

	request := func(t *testing.T) *http.Request {
		t.Helper()
		token, err := jwtService.GenerateToken(auth.GenerateTokenInput{
			UserID: uuid.New(),
			RoleID: roleID,
		})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/invoices", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token.AccessToken)
		return req
	}

	t.Run("granted role passes with the route's grant", func(t *testing.T) {
		checker := &fakeChecker{granted: true}
		w := httptest.NewRecorder()
		newPermissionRouter(checker, jwtService).ServeHTTP(w, request(t))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, roleID, checker.roleID)
		assert.Equal(t, "invoices", checker.resource)
		assert.Equal(t, "read", checker.action)
	})

	t.Run("denied role gets 403", func(t *testing.T) {
		w := httptest.NewRecorder()
		newPermissionRouter(&fakeChecker{granted: false}, jwtService).ServeHTTP(w, request(t))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})

	t.Run("resolver failure is a 500, not a silent denial", func(t *testing.T) {
		w := httptest.NewRecorder()
		newPermissionRouter(&fakeChecker{err: errors.New("backend down")}, jwtService).ServeHTTP(w, request(t))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("unauthenticated request gets 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/invoices", nil)
		newPermissionRouter(&fakeChecker{granted: true}, jwtService).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
