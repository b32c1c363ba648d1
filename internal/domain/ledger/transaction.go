package ledger

import (
	"time"

	"github.com/finapp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a financial transaction recorded against a client
type Transaction struct {
	shared.BaseEntity
	ClientID        uuid.UUID       `json:"client_id"`
	CreatedBy       uuid.UUID       `json:"created_by"`
	TransactionDate time.Time       `json:"transaction_date"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
}

// NewTransaction creates a new transaction, validating amount and date
func NewTransaction(clientID, createdBy uuid.UUID, transactionDate time.Time, amount decimal.Decimal, description, category string) (*Transaction, error) {
	tx := &Transaction{
		BaseEntity:      shared.NewBaseEntity(),
		ClientID:        clientID,
		CreatedBy:       createdBy,
		TransactionDate: transactionDate,
		Amount:          amount,
		Description:     description,
		Category:        category,
	}

	if err := tx.validateAmount(); err != nil {
		return nil, err
	}
	if err := tx.validateDate(); err != nil {
		return nil, err
	}

	return tx, nil
}

// Restore rebuilds a transaction from stored state, re-running validation
func Restore(id, clientID, createdBy uuid.UUID, transactionDate time.Time, amount decimal.Decimal, description, category string, createdAt, updatedAt time.Time) (*Transaction, error) {
	tx := &Transaction{
		BaseEntity: shared.BaseEntity{
			ID:        id,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
		ClientID:        clientID,
		CreatedBy:       createdBy,
		TransactionDate: transactionDate,
		Amount:          amount,
		Description:     description,
		Category:        category,
	}

	if err := tx.validateAmount(); err != nil {
		return nil, err
	}
	if err := tx.validateDate(); err != nil {
		return nil, err
	}

	return tx, nil
}

// UpdateDetails updates the transaction, re-checking invariants.
// Zero values leave the corresponding field unchanged.
func (t *Transaction) UpdateDetails(amount *decimal.Decimal, transactionDate *time.Time, description, category string) error {
	if amount != nil {
		prev := t.Amount
		t.Amount = *amount
		if err := t.validateAmount(); err != nil {
			t.Amount = prev
			return err
		}
	}
	if transactionDate != nil {
		prev := t.TransactionDate
		t.TransactionDate = *transactionDate
		if err := t.validateDate(); err != nil {
			t.TransactionDate = prev
			return err
		}
	}
	if description != "" {
		t.Description = description
	}
	if category != "" {
		t.Category = category
	}
	t.UpdatedAt = time.Now().UTC()

	return nil
}

func (t *Transaction) validateAmount() error {
	if !t.Amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}
	return nil
}

func (t *Transaction) validateDate() error {
	now := time.Now().UTC()
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
	if t.TransactionDate.After(endOfToday) {
		return shared.NewDomainError("INVALID_DATE", "Transaction date cannot be in the future")
	}
	return nil
}
