package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finapp/backend/internal/interfaces/http/dto"
)

// PermissionChecker resolves whether a role holds a grant
type PermissionChecker interface {
	Check(ctx context.Context, roleID uuid.UUID, resource, action string) (bool, error)
}

// RequirePermission creates middleware that requires the caller's role
// to hold the (resource, action) grant. It must run after JWTAuth.
func RequirePermission(checker PermissionChecker, resource, action string, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		roleID, ok := GetRoleID(c)
		if !ok {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		granted, err := checker.Check(c.Request.Context(), roleID, resource, action)
		if err != nil {
			log.Error("permission check failed",
				zap.String("role_id", roleID.String()),
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err))
			requestID := c.GetString("request_id")
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrCodeInternal, "Permission check failed", requestID))
			return
		}

		if !granted {
			requestID := c.GetString("request_id")
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Access to this resource is forbidden", requestID))
			return
		}

		c.Next()
	}
}
