package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	auditapp "github.com/finapp/backend/internal/application/audit"
	"github.com/finapp/backend/internal/domain/audit"
	"github.com/finapp/backend/internal/domain/ledger"
	"github.com/finapp/backend/internal/domain/partner"
	"github.com/finapp/backend/internal/domain/shared"
)

const transactionTable = "financial_transactions"

// TransactionService handles transaction-related business operations
type TransactionService struct {
	transactions ledger.TransactionRepository
	clients      partner.ClientRepository
	recorder     *auditapp.Recorder
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactions ledger.TransactionRepository, clients partner.ClientRepository, recorder *auditapp.Recorder) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		clients:      clients,
		recorder:     recorder,
	}
}

// Create records a new transaction against an existing client
func (s *TransactionService) Create(ctx context.Context, actor uuid.UUID, req CreateTransactionRequest) (*TransactionResponse, error) {
	if _, err := s.clients.FindByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	tx, err := ledger.NewTransaction(req.ClientID, actor, req.TransactionDate, req.Amount, req.Description, req.Category)
	if err != nil {
		return nil, err
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	if err := s.recorder.LogChange(ctx, &actor, transactionTable, tx.ID, audit.ChangeTypeCreate,
		fmt.Sprintf("Recorded transaction of %s in category %q", tx.Amount.StringFixed(2), tx.Category)); err != nil {
		return nil, err
	}

	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// Get returns a transaction by ID
func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// List returns transactions matching the filter
func (s *TransactionService) List(ctx context.Context, filter shared.Filter) ([]TransactionResponse, error) {
	txs, err := s.transactions.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToTransactionResponses(txs), nil
}

// ListByClient returns all transactions for a client, newest first
func (s *TransactionService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]TransactionResponse, error) {
	txs, err := s.transactions.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return ToTransactionResponses(txs), nil
}

// ListByCategory returns transactions in a category
func (s *TransactionService) ListByCategory(ctx context.Context, category string) ([]TransactionResponse, error) {
	txs, err := s.transactions.FindByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return ToTransactionResponses(txs), nil
}

// ListByDateRange returns transactions within [start, end]
func (s *TransactionService) ListByDateRange(ctx context.Context, req DateRangeRequest) ([]TransactionResponse, error) {
	if req.End.Before(req.Start) {
		return nil, shared.NewDomainError("INVALID_RANGE", "End date must not precede start date")
	}
	txs, err := s.transactions.FindByDateRange(ctx, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	return ToTransactionResponses(txs), nil
}

// Update updates a transaction and records the change
func (s *TransactionService) Update(ctx context.Context, actor uuid.UUID, id uuid.UUID, req UpdateTransactionRequest) (*TransactionResponse, error) {
	tx, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.UpdateDetails(req.Amount, req.TransactionDate, req.Description, req.Category); err != nil {
		return nil, err
	}

	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, err
	}

	if err := s.recorder.LogChange(ctx, &actor, transactionTable, tx.ID, audit.ChangeTypeUpdate,
		fmt.Sprintf("Updated transaction, amount now %s", tx.Amount.StringFixed(2))); err != nil {
		return nil, err
	}

	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// Delete removes a transaction and records the deletion
func (s *TransactionService) Delete(ctx context.Context, actor uuid.UUID, id uuid.UUID) error {
	tx, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.transactions.Delete(ctx, tx.ID); err != nil {
		return err
	}

	return s.recorder.LogChange(ctx, &actor, transactionTable, tx.ID, audit.ChangeTypeDelete,
		fmt.Sprintf("Deleted transaction of %s", tx.Amount.StringFixed(2)))
}
