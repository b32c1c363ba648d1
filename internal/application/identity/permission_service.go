package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finapp/backend/internal/domain/identity"
	"github.com/finapp/backend/internal/domain/shared"
	"github.com/finapp/backend/internal/infrastructure/cache"
)

const (
	// Grants effectively never change without an explicit revoke, so
	// positive answers live long. Negative answers are tombstoned
	// briefly so a fresh grant takes effect quickly.
	positiveGrantTTL = 30 * 24 * time.Hour
	negativeGrantTTL = 5 * time.Minute

	grantedValue = "1"
	deniedValue  = "0"
)

// PermissionService resolves (role, resource, action) permission
// checks with a cache in front of the grant store. Cache failures
// degrade to store lookups.
type PermissionService struct {
	permissions identity.PermissionRepository
	store       cache.Store
	logger      *zap.Logger

	positiveTTL time.Duration
	negativeTTL time.Duration
}

// NewPermissionService creates a new PermissionService
func NewPermissionService(permissions identity.PermissionRepository, store cache.Store, logger *zap.Logger) *PermissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PermissionService{
		permissions: permissions,
		store:       store,
		logger:      logger,
		positiveTTL: positiveGrantTTL,
		negativeTTL: negativeGrantTTL,
	}
}

// Check reports whether the role holds the (resource, action) grant.
// A denial is not an error; errors signal that the answer could not
// be determined.
func (s *PermissionService) Check(ctx context.Context, roleID uuid.UUID, resource, action string) (bool, error) {
	resource = strings.ToLower(strings.TrimSpace(resource))
	action = strings.ToLower(strings.TrimSpace(action))
	key := cache.PermissionKey(roleID, resource, action)

	if value, hit, err := s.store.Get(ctx, key); err != nil {
		s.logger.Warn("permission cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		return value == grantedValue, nil
	}

	granted, err := s.lookupGrant(ctx, roleID, resource, action)
	if err != nil {
		return false, err
	}

	value, ttl := grantedValue, s.positiveTTL
	if !granted {
		value, ttl = deniedValue, s.negativeTTL
	}
	if err := s.store.Set(ctx, key, value, ttl); err != nil {
		s.logger.Warn("permission cache write failed", zap.String("key", key), zap.Error(err))
	}

	return granted, nil
}

func (s *PermissionService) lookupGrant(ctx context.Context, roleID uuid.UUID, resource, action string) (bool, error) {
	_, err := s.permissions.FindGrant(ctx, roleID, resource, action)
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Grant issues a permission to a role and invalidates the cached
// answer for it
func (s *PermissionService) Grant(ctx context.Context, req GrantRequest) (*PermissionResponse, error) {
	permission, err := identity.NewPermission(req.RoleID, req.Resource, req.Action)
	if err != nil {
		return nil, err
	}

	if err := s.permissions.Create(ctx, permission); err != nil {
		return nil, err
	}
	s.invalidate(ctx, permission)

	resp := ToPermissionResponse(permission)
	return &resp, nil
}

// Revoke removes a (role, resource, action) grant and invalidates the
// cached answer for it
func (s *PermissionService) Revoke(ctx context.Context, roleID uuid.UUID, resource, action string) error {
	permission, err := s.permissions.FindGrant(ctx, roleID, resource, action)
	if err != nil {
		return err
	}

	if err := s.permissions.Delete(ctx, permission.ID); err != nil {
		return err
	}
	s.invalidate(ctx, permission)

	return nil
}

// ListByRole returns all grants held by a role
func (s *PermissionService) ListByRole(ctx context.Context, roleID uuid.UUID) ([]PermissionResponse, error) {
	perms, err := s.permissions.FindByRole(ctx, roleID)
	if err != nil {
		return nil, err
	}
	return ToPermissionResponses(perms), nil
}

func (s *PermissionService) invalidate(ctx context.Context, p *identity.Permission) {
	key := cache.PermissionKey(p.RoleID, p.Resource, p.Action)
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("permission cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
