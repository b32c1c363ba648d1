package billing

import (
	"time"

	"github.com/finapp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending       InvoiceStatus = "PENDING"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPartiallyPaid, InvoiceStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// Invoice represents an invoice issued to a client.
// Status is never set directly; it is always derived from the amounts.
type Invoice struct {
	shared.BaseEntity
	ClientID    uuid.UUID       `json:"client_id"`
	CreatedBy   uuid.UUID       `json:"created_by"`
	InvoiceDate time.Time       `json:"invoice_date"`
	DueDate     time.Time       `json:"due_date"`
	AmountDue   decimal.Decimal `json:"amount_due"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	Status      InvoiceStatus   `json:"status"`
}

// NewInvoice creates a new invoice, validating all amount and date invariants
func NewInvoice(clientID, createdBy uuid.UUID, invoiceDate, dueDate time.Time, amountDue, amountPaid decimal.Decimal) (*Invoice, error) {
	inv := &Invoice{
		BaseEntity:  shared.NewBaseEntity(),
		ClientID:    clientID,
		CreatedBy:   createdBy,
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		AmountDue:   amountDue,
		AmountPaid:  amountPaid,
	}

	if err := inv.validateAmounts(); err != nil {
		return nil, err
	}
	if err := inv.validateDates(); err != nil {
		return nil, err
	}
	inv.deriveStatus()

	return inv, nil
}

// Restore rebuilds an invoice from persisted state, re-validating invariants.
// The stored status is discarded and re-derived from the amounts.
func Restore(id, clientID, createdBy uuid.UUID, invoiceDate, dueDate time.Time, amountDue, amountPaid decimal.Decimal, createdAt, updatedAt time.Time) (*Invoice, error) {
	inv := &Invoice{
		BaseEntity: shared.BaseEntity{
			ID:        id,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
		ClientID:    clientID,
		CreatedBy:   createdBy,
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		AmountDue:   amountDue,
		AmountPaid:  amountPaid,
	}

	if err := inv.validateAmounts(); err != nil {
		return nil, err
	}
	if err := inv.validateDates(); err != nil {
		return nil, err
	}
	inv.deriveStatus()

	return inv, nil
}

// RecordPayment applies a payment to the invoice. It rejects non-positive
// amounts, overpayment, and payments against an already paid invoice.
func (i *Invoice) RecordPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment amount must be positive")
	}
	if i.Status == InvoiceStatusPaid {
		return shared.NewDomainError("ALREADY_PAID", "Invoice is already paid")
	}
	if i.AmountPaid.Add(amount).GreaterThan(i.AmountDue) {
		return shared.NewDomainError("OVERPAYMENT", "Payment would exceed amount due")
	}

	i.AmountPaid = i.AmountPaid.Add(amount)
	i.deriveStatus()
	i.UpdatedAt = time.Now().UTC()

	return nil
}

// UpdateAmounts replaces the invoice amounts, re-validating invariants.
// State is left unchanged when validation fails.
func (i *Invoice) UpdateAmounts(amountDue, amountPaid decimal.Decimal) error {
	prevDue, prevPaid := i.AmountDue, i.AmountPaid
	i.AmountDue = amountDue
	i.AmountPaid = amountPaid

	if err := i.validateAmounts(); err != nil {
		i.AmountDue, i.AmountPaid = prevDue, prevPaid
		return err
	}

	i.deriveStatus()
	i.UpdatedAt = time.Now().UTC()

	return nil
}

// UpdateDates replaces the invoice dates, re-validating their ordering
func (i *Invoice) UpdateDates(invoiceDate, dueDate time.Time) error {
	prevInvoice, prevDue := i.InvoiceDate, i.DueDate
	i.InvoiceDate = invoiceDate
	i.DueDate = dueDate

	if err := i.validateDates(); err != nil {
		i.InvoiceDate, i.DueDate = prevInvoice, prevDue
		return err
	}

	i.UpdatedAt = time.Now().UTC()

	return nil
}

// IsOverdue returns true if the due date has passed and the invoice is unpaid
func (i *Invoice) IsOverdue() bool {
	today := truncateToDay(time.Now().UTC())
	return truncateToDay(i.DueDate).Before(today) && i.Status != InvoiceStatusPaid
}

// CanBeDeleted returns true unless the invoice is fully paid
func (i *Invoice) CanBeDeleted() bool {
	return i.Status != InvoiceStatusPaid
}

// OutstandingAmount returns the remaining amount due
func (i *Invoice) OutstandingAmount() decimal.Decimal {
	return i.AmountDue.Sub(i.AmountPaid)
}

func (i *Invoice) validateAmounts() error {
	if !i.AmountDue.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Invoice amount must be positive")
	}
	if i.AmountPaid.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot be negative")
	}
	if i.AmountPaid.GreaterThan(i.AmountDue) {
		return shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot exceed amount due")
	}
	return nil
}

func (i *Invoice) validateDates() error {
	if truncateToDay(i.DueDate).Before(truncateToDay(i.InvoiceDate)) {
		return shared.NewDomainError("INVALID_DATES", "Due date cannot be before invoice date")
	}
	return nil
}

// deriveStatus recomputes status as a pure function of the amounts
func (i *Invoice) deriveStatus() {
	switch {
	case i.AmountPaid.GreaterThanOrEqual(i.AmountDue):
		i.Status = InvoiceStatusPaid
	case i.AmountPaid.IsPositive():
		i.Status = InvoiceStatusPartiallyPaid
	default:
		i.Status = InvoiceStatusPending
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
