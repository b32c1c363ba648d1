package identity

import (
	"context"

	"github.com/google/uuid"
)

// PermissionRepository defines the interface for permission grant persistence
type PermissionRepository interface {
	// FindGrant finds the exact (role, resource, action) grant, or
	// shared.ErrNotFound when no such grant exists
	FindGrant(ctx context.Context, roleID uuid.UUID, resource, action string) (*Permission, error)

	// FindByRole finds all grants for a role
	FindByRole(ctx context.Context, roleID uuid.UUID) ([]Permission, error)

	// Create persists a new grant
	Create(ctx context.Context, permission *Permission) error

	// Delete removes a grant by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create persists a new user
	Create(ctx context.Context, user *User) error

	// Update persists changes to an existing user
	Update(ctx context.Context, user *User) error

	// DeleteByClientID removes all users belonging to a client
	DeleteByClientID(ctx context.Context, clientID uuid.UUID) error
}

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	// FindByID finds a role by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)

	// FindByName finds a role by its name
	FindByName(ctx context.Context, name string) (*Role, error)

	// Create persists a new role
	Create(ctx context.Context, role *Role) error
}
