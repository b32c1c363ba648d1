package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	auditapp "github.com/finapp/backend/internal/application/audit"
	"github.com/finapp/backend/internal/domain/audit"
	"github.com/finapp/backend/internal/domain/identity"
	"github.com/finapp/backend/internal/domain/partner"
	"github.com/finapp/backend/internal/domain/shared"
	"github.com/finapp/backend/internal/infrastructure/auth"
)

// ErrInvalidCredentials is returned on a failed login. It deliberately
// does not distinguish unknown email from wrong password.
var ErrInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")

// clientRoleName is the role assigned to users created through signup.
const clientRoleName = "client"

const (
	clientsTable = "clients"
	usersTable   = "users"
)

// AuthService handles user registration and authentication
type AuthService struct {
	users    identity.UserRepository
	roles    identity.RoleRepository
	clients  partner.ClientRepository
	recorder *auditapp.Recorder
	jwt      *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.UserRepository, roles identity.RoleRepository, clients partner.ClientRepository, recorder *auditapp.Recorder, jwt *auth.JWTService) *AuthService {
	return &AuthService{
		users:    users,
		roles:    roles,
		clients:  clients,
		recorder: recorder,
		jwt:      jwt,
	}
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if _, err := s.roles.FindByID(ctx, req.RoleID); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := identity.NewUser(req.Email, req.Password, req.FullName, req.RoleID)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Signup creates a client company together with its first user and
// logs the caller straight in. Both creates are audited as
// system-initiated since no authenticated actor exists yet.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*LoginResponse, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if _, err := s.clients.FindByName(ctx, req.CompanyName); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A client with this company name already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	role, err := s.clientRole(ctx)
	if err != nil {
		return nil, err
	}

	client, err := partner.NewClient(req.CompanyName, req.Industry, req.ContactEmail, req.ContactPhone, req.Address)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(req.Email, req.Password, req.FullName, role.ID)
	if err != nil {
		return nil, err
	}
	user.AssignClient(client.ID)

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.recorder.LogChange(ctx, nil, clientsTable, client.ID, audit.ChangeTypeCreate,
		fmt.Sprintf("Created client %q at signup", client.Name)); err != nil {
		return nil, err
	}
	if err := s.recorder.LogChange(ctx, nil, usersTable, user.ID, audit.ChangeTypeCreate,
		fmt.Sprintf("Created user %s at signup", user.Email)); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(auth.GenerateTokenInput{
		UserID:   user.ID,
		RoleID:   user.RoleID,
		ClientID: user.ClientID,
		Email:    user.Email,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserResponse(user),
	}, nil
}

// clientRole returns the shared signup role, creating it on first use.
func (s *AuthService) clientRole(ctx context.Context) (*identity.Role, error) {
	role, err := s.roles.FindByName(ctx, clientRoleName)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	role, err = identity.NewRole(clientRoleName, "Client company user")
	if err != nil {
		return nil, err
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Login authenticates a user and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.Active || !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(auth.GenerateTokenInput{
		UserID:   user.ID,
		RoleID:   user.RoleID,
		ClientID: user.ClientID,
		Email:    user.Email,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserResponse(user),
	}, nil
}

// GetUser returns a user by ID
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}
