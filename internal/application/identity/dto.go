package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/finapp/backend/internal/domain/identity"
)

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email    string    `json:"email" binding:"required,email"`
	Password string    `json:"password" binding:"required,min=8"`
	FullName string    `json:"full_name" binding:"max=200"`
	RoleID   uuid.UUID `json:"role_id" binding:"required"`
}

// SignupRequest carries the client company and its first user
type SignupRequest struct {
	CompanyName  string `json:"company_name" binding:"required,max=200"`
	Industry     string `json:"industry" binding:"max=100"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone" binding:"max=50"`
	Address      string `json:"address" binding:"max=500"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FullName     string `json:"full_name" binding:"max=200"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	RoleID    uuid.UUID  `json:"role_id"`
	ClientID  *uuid.UUID `json:"client_id,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToUserResponse converts a domain user to a response
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		RoleID:    user.RoleID,
		ClientID:  user.ClientID,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// GrantRequest represents a permission grant request
type GrantRequest struct {
	RoleID   uuid.UUID `json:"role_id" binding:"required"`
	Resource string    `json:"resource" binding:"required,max=100"`
	Action   string    `json:"action" binding:"required,max=100"`
}

// PermissionResponse represents a permission grant in API responses
type PermissionResponse struct {
	ID       uuid.UUID `json:"id"`
	RoleID   uuid.UUID `json:"role_id"`
	Resource string    `json:"resource"`
	Action   string    `json:"action"`
}

// ToPermissionResponse converts a domain permission to a response
func ToPermissionResponse(p *identity.Permission) PermissionResponse {
	return PermissionResponse{
		ID:       p.ID,
		RoleID:   p.RoleID,
		Resource: p.Resource,
		Action:   p.Action,
	}
}

// ToPermissionResponses converts a slice of domain permissions
func ToPermissionResponses(perms []identity.Permission) []PermissionResponse {
	responses := make([]PermissionResponse, len(perms))
	for i := range perms {
		responses[i] = ToPermissionResponse(&perms[i])
	}
	return responses
}
