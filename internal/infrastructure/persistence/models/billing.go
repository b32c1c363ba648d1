package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finapp/backend/internal/domain/billing"
)

// InvoiceModel is the persistence model for the Invoice domain entity.
type InvoiceModel struct {
	BaseModel
	ClientID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;not null"`
	InvoiceDate time.Time       `gorm:"not null"`
	DueDate     time.Time       `gorm:"not null;index"`
	AmountDue   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AmountPaid  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status      string          `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
// The status is re-derived from the amounts, never trusted from
// storage.
func (m *InvoiceModel) ToDomain() (*billing.Invoice, error) {
	return billing.Restore(m.ID, m.ClientID, m.CreatedBy,
		m.InvoiceDate, m.DueDate, m.AmountDue, m.AmountPaid,
		m.CreatedAt, m.UpdatedAt)
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.ClientID = inv.ClientID
	m.CreatedBy = inv.CreatedBy
	m.InvoiceDate = inv.InvoiceDate
	m.DueDate = inv.DueDate
	m.AmountDue = inv.AmountDue
	m.AmountPaid = inv.AmountPaid
	m.Status = inv.Status.String()
}
