package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finapp/backend/internal/domain/ledger"
)

// CreateTransactionRequest represents a request to record a transaction
type CreateTransactionRequest struct {
	ClientID        uuid.UUID       `json:"client_id" binding:"required"`
	TransactionDate time.Time       `json:"transaction_date" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Description     string          `json:"description" binding:"max=500"`
	Category        string          `json:"category" binding:"max=100"`
}

// UpdateTransactionRequest represents a request to update a transaction.
// Nil or empty fields leave the current value unchanged.
type UpdateTransactionRequest struct {
	TransactionDate *time.Time       `json:"transaction_date"`
	Amount          *decimal.Decimal `json:"amount"`
	Description     string           `json:"description" binding:"max=500"`
	Category        string           `json:"category" binding:"max=100"`
}

// DateRangeRequest bounds a transaction query by date
type DateRangeRequest struct {
	Start time.Time `form:"start" binding:"required"`
	End   time.Time `form:"end" binding:"required"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	ClientID        uuid.UUID       `json:"client_id"`
	CreatedBy       uuid.UUID       `json:"created_by"`
	TransactionDate time.Time       `json:"transaction_date"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToTransactionResponse converts a domain transaction to a response
func ToTransactionResponse(tx *ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              tx.ID,
		ClientID:        tx.ClientID,
		CreatedBy:       tx.CreatedBy,
		TransactionDate: tx.TransactionDate,
		Amount:          tx.Amount,
		Description:     tx.Description,
		Category:        tx.Category,
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions
func ToTransactionResponses(txs []ledger.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txs))
	for i := range txs {
		responses[i] = ToTransactionResponse(&txs[i])
	}
	return responses
}
