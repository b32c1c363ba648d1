package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finapp/backend/internal/domain/billing"
)

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	ClientID    uuid.UUID        `json:"client_id" binding:"required"`
	InvoiceDate time.Time        `json:"invoice_date" binding:"required"`
	DueDate     time.Time        `json:"due_date" binding:"required"`
	AmountDue   decimal.Decimal  `json:"amount_due" binding:"required"`
	AmountPaid  *decimal.Decimal `json:"amount_paid"`
}

// UpdateInvoiceRequest represents a request to update an invoice.
// Nil fields leave the current value unchanged.
type UpdateInvoiceRequest struct {
	InvoiceDate *time.Time       `json:"invoice_date"`
	DueDate     *time.Time       `json:"due_date"`
	AmountDue   *decimal.Decimal `json:"amount_due"`
	AmountPaid  *decimal.Decimal `json:"amount_paid"`
}

// RecordPaymentRequest represents a payment against an invoice
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// SearchInvoicesRequest represents invoice search criteria
type SearchInvoicesRequest struct {
	ClientID  *uuid.UUID       `json:"client_id" form:"client_id"`
	Status    *string          `json:"status" form:"status"`
	StartDate *time.Time       `json:"start_date" form:"start_date"`
	EndDate   *time.Time       `json:"end_date" form:"end_date"`
	MinAmount *decimal.Decimal `json:"min_amount" form:"min_amount"`
	MaxAmount *decimal.Decimal `json:"max_amount" form:"max_amount"`
	IsOverdue bool             `json:"is_overdue" form:"is_overdue"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	ClientID    uuid.UUID       `json:"client_id"`
	CreatedBy   uuid.UUID       `json:"created_by"`
	InvoiceDate time.Time       `json:"invoice_date"`
	DueDate     time.Time       `json:"due_date"`
	AmountDue   decimal.Decimal `json:"amount_due"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Status      string          `json:"status"`
	IsOverdue   bool            `json:"is_overdue"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToInvoiceResponse converts a domain Invoice to InvoiceResponse
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:          inv.ID,
		ClientID:    inv.ClientID,
		CreatedBy:   inv.CreatedBy,
		InvoiceDate: inv.InvoiceDate,
		DueDate:     inv.DueDate,
		AmountDue:   inv.AmountDue,
		AmountPaid:  inv.AmountPaid,
		Outstanding: inv.OutstandingAmount(),
		Status:      inv.Status.String(),
		IsOverdue:   inv.IsOverdue(),
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of domain Invoices
func ToInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToInvoiceResponse(&invoices[i])
	}
	return out
}
