package billing

import (
	"context"
	"time"

	"github.com/finapp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SearchCriteria holds the optional filters for invoice searches
type SearchCriteria struct {
	ClientID  *uuid.UUID
	Status    *InvoiceStatus
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	IsOverdue bool
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByClientID finds all invoices for a client
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]Invoice, error)

	// FindAll finds all invoices matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)

	// Search finds invoices matching the criteria
	Search(ctx context.Context, criteria SearchCriteria) ([]Invoice, error)

	// FindOverdue finds unpaid invoices past their due date, optionally
	// scoped to a single client
	FindOverdue(ctx context.Context, clientID *uuid.UUID) ([]Invoice, error)

	// Create persists a new invoice
	Create(ctx context.Context, invoice *Invoice) error

	// Update persists changes to an existing invoice
	Update(ctx context.Context, invoice *Invoice) error

	// Delete removes an invoice by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
