package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finapp/backend/internal/domain/identity"
	"github.com/finapp/backend/internal/domain/shared"
	"github.com/finapp/backend/internal/infrastructure/cache"
)

// MockPermissionRepository is a mock implementation of PermissionRepository
type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) FindGrant(ctx context.Context, roleID uuid.UUID, resource, action string) (*identity.Permission, error) {
	args := m.Called(ctx, roleID, resource, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Permission), args.Error(1)
}

func (m *MockPermissionRepository) FindByRole(ctx context.Context, roleID uuid.UUID) ([]identity.Permission, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Permission), args.Error(1)
}

func (m *MockPermissionRepository) Create(ctx context.Context, permission *identity.Permission) error {
	return m.Called(ctx, permission).Error(0)
}

func (m *MockPermissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func newTestPermissionService() (*PermissionService, *MockPermissionRepository, *cache.MemoryStore) {
	permissions := new(MockPermissionRepository)
	store := cache.NewMemoryStore(time.Minute)
	return NewPermissionService(permissions, store, nil), permissions, store
}

func TestPermissionService_Check(t *testing.T) {
	ctx := context.Background()
	roleID := uuid.New()

	t.Run("grant resolves once then serves from cache", func(t *testing.T) {
		svc, permissions, _ := newTestPermissionService()

		grant, err := identity.NewPermission(roleID, "invoices", "read")
		require.NoError(t, err)
		permissions.On("FindGrant", ctx, roleID, "invoices", "read").Return(grant, nil).Once()

		for i := 0; i < 3; i++ {
			granted, err := svc.Check(ctx, roleID, "invoices", "read")
			require.NoError(t, err)
			assert.True(t, granted)
		}
		permissions.AssertNumberOfCalls(t, "FindGrant", 1)
	})

	t.Run("denial is tombstoned, not an error", func(t *testing.T) {
		svc, permissions, _ := newTestPermissionService()

		permissions.On("FindGrant", ctx, roleID, "invoices", "delete").Return(nil, shared.ErrNotFound).Once()

		for i := 0; i < 3; i++ {
			granted, err := svc.Check(ctx, roleID, "invoices", "delete")
			require.NoError(t, err)
			assert.False(t, granted)
		}
		permissions.AssertNumberOfCalls(t, "FindGrant", 1)
	})

	t.Run("tombstone expires and the store is asked again", func(t *testing.T) {
		svc, permissions, _ := newTestPermissionService()
		svc.negativeTTL = time.Nanosecond

		permissions.On("FindGrant", ctx, roleID, "clients", "write").Return(nil, shared.ErrNotFound).Twice()

		granted, err := svc.Check(ctx, roleID, "clients", "write")
		require.NoError(t, err)
		assert.False(t, granted)

		time.Sleep(time.Millisecond)

		granted, err = svc.Check(ctx, roleID, "clients", "write")
		require.NoError(t, err)
		assert.False(t, granted)
		permissions.AssertNumberOfCalls(t, "FindGrant", 2)
	})

	t.Run("resource and action are normalized", func(t *testing.T) {
		svc, permissions, store := newTestPermissionService()

		grant, err := identity.NewPermission(roleID, "invoices", "read")
		require.NoError(t, err)
		permissions.On("FindGrant", ctx, roleID, "invoices", "read").Return(grant, nil).Once()

		granted, err := svc.Check(ctx, roleID, " Invoices ", "READ")
		require.NoError(t, err)
		assert.True(t, granted)

		value, hit, err := store.Get(ctx, cache.PermissionKey(roleID, "invoices", "read"))
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, "1", value)
	})

	t.Run("store errors surface", func(t *testing.T) {
		svc, permissions, _ := newTestPermissionService()

		permissions.On("FindGrant", ctx, roleID, "invoices", "read").Return(nil, assert.AnError)

		_, err := svc.Check(ctx, roleID, "invoices", "read")
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestPermissionService_GrantInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	roleID := uuid.New()
	svc, permissions, _ := newTestPermissionService()

	// Cache a denial first.
	permissions.On("FindGrant", ctx, roleID, "reports", "generate").Return(nil, shared.ErrNotFound).Once()
	granted, err := svc.Check(ctx, roleID, "reports", "generate")
	require.NoError(t, err)
	require.False(t, granted)

	permissions.On("Create", ctx, mock.AnythingOfType("*identity.Permission")).Return(nil)
	resp, err := svc.Grant(ctx, GrantRequest{RoleID: roleID, Resource: "reports", Action: "generate"})
	require.NoError(t, err)
	assert.Equal(t, "reports", resp.Resource)

	// The tombstone is gone, so the next check goes back to the store.
	grant, err := identity.NewPermission(roleID, "reports", "generate")
	require.NoError(t, err)
	permissions.On("FindGrant", ctx, roleID, "reports", "generate").Return(grant, nil).Once()

	granted, err = svc.Check(ctx, roleID, "reports", "generate")
	require.NoError(t, err)
	assert.True(t, granted)
}

func TestPermissionService_RevokeInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	roleID := uuid.New()
	svc, permissions, store := newTestPermissionService()

	grant, err := identity.NewPermission(roleID, "invoices", "write")
	require.NoError(t, err)

	permissions.On("FindGrant", ctx, roleID, "invoices", "write").Return(grant, nil).Once()
	granted, err := svc.Check(ctx, roleID, "invoices", "write")
	require.NoError(t, err)
	require.True(t, granted)

	permissions.On("FindGrant", ctx, roleID, "invoices", "write").Return(grant, nil).Once()
	permissions.On("Delete", ctx, grant.ID).Return(nil)
	require.NoError(t, svc.Revoke(ctx, roleID, "invoices", "write"))

	_, hit, err := store.Get(ctx, cache.PermissionKey(roleID, "invoices", "write"))
	require.NoError(t, err)
	assert.False(t, hit)
}
