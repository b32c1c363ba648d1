package partner

import (
	"context"

	"github.com/finapp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID finds a client by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByName finds a client by its exact name
	FindByName(ctx context.Context, name string) (*Client, error)

	// FindByEmail finds a client by its contact email
	FindByEmail(ctx context.Context, email string) (*Client, error)

	// FindByIndustry finds all clients in an industry
	FindByIndustry(ctx context.Context, industry string) ([]Client, error)

	// FindAll finds all clients matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)

	// Search finds clients whose name or industry matches the term
	Search(ctx context.Context, term string) ([]Client, error)

	// Create persists a new client
	Create(ctx context.Context, client *Client) error

	// Update persists changes to an existing client
	Update(ctx context.Context, client *Client) error

	// Delete removes a client by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
