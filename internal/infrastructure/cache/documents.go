package cache

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finapp/backend/internal/domain/billing"
	"github.com/finapp/backend/internal/domain/ledger"
	"github.com/finapp/backend/internal/domain/partner"
)

// Cache payloads serialize every field to a string: ISO-8601 for
// dates, canonical UUID strings for identifiers, plain decimal
// strings for amounts. Entities are re-validated on rehydration.

const timeLayout = time.RFC3339Nano

type clientDocument struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Industry     string `json:"industry"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func newClientDocument(c *partner.Client) clientDocument {
	return clientDocument{
		ID:           c.ID.String(),
		Name:         c.Name,
		Industry:     c.Industry,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		Address:      c.Address,
		CreatedAt:    c.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:    c.UpdatedAt.UTC().Format(timeLayout),
	}
}

func (d clientDocument) toDomain() (*partner.Client, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("cached client id: %w", err)
	}
	createdAt, err := time.Parse(timeLayout, d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("cached client created_at: %w", err)
	}
	updatedAt, err := time.Parse(timeLayout, d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("cached client updated_at: %w", err)
	}
	return partner.Restore(id, d.Name, d.Industry, d.ContactEmail, d.ContactPhone, d.Address, createdAt, updatedAt)
}

type invoiceDocument struct {
	ID          string `json:"id"`
	ClientID    string `json:"client_id"`
	CreatedBy   string `json:"created_by"`
	InvoiceDate string `json:"invoice_date"`
	DueDate     string `json:"due_date"`
	AmountDue   string `json:"amount_due"`
	AmountPaid  string `json:"amount_paid"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func newInvoiceDocument(inv *billing.Invoice) invoiceDocument {
	return invoiceDocument{
		ID:          inv.ID.String(),
		ClientID:    inv.ClientID.String(),
		CreatedBy:   inv.CreatedBy.String(),
		InvoiceDate: inv.InvoiceDate.UTC().Format(timeLayout),
		DueDate:     inv.DueDate.UTC().Format(timeLayout),
		AmountDue:   inv.AmountDue.String(),
		AmountPaid:  inv.AmountPaid.String(),
		Status:      inv.Status.String(),
		CreatedAt:   inv.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:   inv.UpdatedAt.UTC().Format(timeLayout),
	}
}

func (d invoiceDocument) toDomain() (*billing.Invoice, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("cached invoice id: %w", err)
	}
	clientID, err := uuid.Parse(d.ClientID)
	if err != nil {
		return nil, fmt.Errorf("cached invoice client_id: %w", err)
	}
	createdBy, err := uuid.Parse(d.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("cached invoice created_by: %w", err)
	}
	invoiceDate, err := time.Parse(timeLayout, d.InvoiceDate)
	if err != nil {
		return nil, fmt.Errorf("cached invoice invoice_date: %w", err)
	}
	dueDate, err := time.Parse(timeLayout, d.DueDate)
	if err != nil {
		return nil, fmt.Errorf("cached invoice due_date: %w", err)
	}
	amountDue, err := decimal.NewFromString(d.AmountDue)
	if err != nil {
		return nil, fmt.Errorf("cached invoice amount_due: %w", err)
	}
	amountPaid, err := decimal.NewFromString(d.AmountPaid)
	if err != nil {
		return nil, fmt.Errorf("cached invoice amount_paid: %w", err)
	}
	createdAt, err := time.Parse(timeLayout, d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("cached invoice created_at: %w", err)
	}
	updatedAt, err := time.Parse(timeLayout, d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("cached invoice updated_at: %w", err)
	}
	return billing.Restore(id, clientID, createdBy, invoiceDate, dueDate, amountDue, amountPaid, createdAt, updatedAt)
}

type transactionDocument struct {
	ID              string `json:"id"`
	ClientID        string `json:"client_id"`
	CreatedBy       string `json:"created_by"`
	TransactionDate string `json:"transaction_date"`
	Amount          string `json:"amount"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func newTransactionDocument(tx *ledger.Transaction) transactionDocument {
	return transactionDocument{
		ID:              tx.ID.String(),
		ClientID:        tx.ClientID.String(),
		CreatedBy:       tx.CreatedBy.String(),
		TransactionDate: tx.TransactionDate.UTC().Format(timeLayout),
		Amount:          tx.Amount.String(),
		Description:     tx.Description,
		Category:        tx.Category,
		CreatedAt:       tx.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:       tx.UpdatedAt.UTC().Format(timeLayout),
	}
}

func (d transactionDocument) toDomain() (*ledger.Transaction, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("cached transaction id: %w", err)
	}
	clientID, err := uuid.Parse(d.ClientID)
	if err != nil {
		return nil, fmt.Errorf("cached transaction client_id: %w", err)
	}
	createdBy, err := uuid.Parse(d.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("cached transaction created_by: %w", err)
	}
	transactionDate, err := time.Parse(timeLayout, d.TransactionDate)
	if err != nil {
		return nil, fmt.Errorf("cached transaction transaction_date: %w", err)
	}
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return nil, fmt.Errorf("cached transaction amount: %w", err)
	}
	createdAt, err := time.Parse(timeLayout, d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("cached transaction created_at: %w", err)
	}
	updatedAt, err := time.Parse(timeLayout, d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("cached transaction updated_at: %w", err)
	}
	return ledger.Restore(id, clientID, createdBy, transactionDate, amount, d.Description, d.Category, createdAt, updatedAt)
}
