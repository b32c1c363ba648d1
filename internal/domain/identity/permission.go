package identity

import (
	"strings"

	"github.com/finapp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Permission represents a (role, resource, action) grant.
// It is immutable once issued.
type Permission struct {
	shared.BaseEntity
	RoleID   uuid.UUID `json:"role_id"`
	Resource string    `json:"resource"`
	Action   string    `json:"action"`
}

// NewPermission creates a new permission grant
func NewPermission(roleID uuid.UUID, resource, action string) (*Permission, error) {
	if err := validateGrantPart(resource, "resource"); err != nil {
		return nil, err
	}
	if err := validateGrantPart(action, "action"); err != nil {
		return nil, err
	}

	return &Permission{
		BaseEntity: shared.NewBaseEntity(),
		RoleID:     roleID,
		Resource:   strings.ToLower(strings.TrimSpace(resource)),
		Action:     strings.ToLower(strings.TrimSpace(action)),
	}, nil
}

// Matches reports whether the grant covers the given resource and action
func (p *Permission) Matches(resource, action string) bool {
	return p.Resource == strings.ToLower(resource) && p.Action == strings.ToLower(action)
}

func validateGrantPart(value, what string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return shared.NewDomainError("INVALID_PERMISSION", "Permission "+what+" cannot be empty")
	}
	if len(value) > 100 {
		return shared.NewDomainError("INVALID_PERMISSION", "Permission "+what+" cannot exceed 100 characters")
	}
	for _, r := range value {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_PERMISSION", "Permission "+what+" can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
