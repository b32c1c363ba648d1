package ledger

import (
	"context"
	"time"

	"github.com/finapp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TransactionRepository defines the interface for transaction persistence
type TransactionRepository interface {
	// FindByID finds a transaction by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// FindByClientID finds all transactions for a client, newest first
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]Transaction, error)

	// FindByCategory finds transactions in a category
	FindByCategory(ctx context.Context, category string) ([]Transaction, error)

	// FindByDateRange finds transactions within [start, end]
	FindByDateRange(ctx context.Context, start, end time.Time) ([]Transaction, error)

	// FindAll finds all transactions matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Transaction, error)

	// Create persists a new transaction
	Create(ctx context.Context, tx *Transaction) error

	// Update persists changes to an existing transaction
	Update(ctx context.Context, tx *Transaction) error

	// Delete removes a transaction by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
