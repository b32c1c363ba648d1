package partner

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
)

const clientTable = "clients"

// ClientService handles client-related business operations
type ClientService struct {
	clients  partner.ClientRepository
	users    identity.UserRepository
	recorder *auditapp.Recorder
}

// NewClientService creates a new ClientService
func NewClientService(clients partner.ClientRepository, users identity.UserRepository, recorder *auditapp.Recorder) *ClientService {
	return &ClientService{
		clients:  clients,
		users:    users,
		recorder: recorder,
	}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, actor uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	if _, err := s.clients.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Client with this name already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	client, err := partner.NewClient(req.Name, req.Industry, req.ContactEmail, req.ContactPhone, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}

	if err := s.recorder.LogChange(ctx, &actor, clientTable, client.ID, audit.ChangeTypeCreate,
		fmt.Sprintf("Created client %q", client.Name)); err != nil {
		return nil, err
	}

	resp := ToClientResponse(client)
	return &resp, nil
}

// Get returns a client by ID
func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToClientResponse(client)
	return &resp, nil
}

// GetByName returns a client by exact name
func (s *ClientService) GetByName(ctx context.Context, name string) (*ClientResponse, error) {
	client, err := s.clients.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	resp := ToClientResponse(client)
	return &resp, nil
}

// List returns clients matching the filter
func (s *ClientService) List(ctx context.Context, filter shared.Filter) ([]ClientResponse, error) {
	clients, err := s.clients.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToClientResponses(clients), nil
}

// ListByIndustry returns all clients in an industry
func (s *ClientService) ListByIndustry(ctx context.Context, industry string) ([]ClientResponse, error) {
	clients, err := s.clients.FindByIndustry(ctx, industry)
	if err != nil {
		return nil, err
	}
	return ToClientResponses(clients), nil
}

// Search returns clients whose name or industry matches the term
func (s *ClientService) Search(ctx context.Context, term string) ([]ClientResponse, error) {
	clients, err := s.clients.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	return ToClientResponses(clients), nil
}

// Update updates a client's details
func (s *ClientService) Update(ctx context.Context, actor, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" && req.Name != client.Name {
		if _, err := s.clients.FindByName(ctx, req.Name); err == nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Client with this name already exists")
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	if err := client.UpdateDetails(req.Name, req.Industry, req.ContactEmail, req.ContactPhone, req.Address); err != nil {
		return nil, err
	}

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}

	if err := s.recorder.LogChange(ctx, &actor, clientTable, client.ID, audit.ChangeTypeUpdate,
		fmt.Sprintf("Updated client %q", client.Name)); err != nil {
		return nil, err
	}

	resp := ToClientResponse(client)
	return &resp, nil
}

// Delete removes a client and the users that belong to it
func (s *ClientService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.DeleteByClientID(ctx, id); err != nil {
		return err
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}

	return s.recorder.LogChange(ctx, &actor, clientTable, id, audit.ChangeTypeDelete,
		fmt.Sprintf("Deleted client %q", client.Name))
}
