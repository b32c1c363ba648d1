package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finapp/backend/internal/domain/ledger"
)

// TransactionModel is the persistence model for the Transaction domain entity.
type TransactionModel struct {
	BaseModel
	ClientID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedBy       uuid.UUID       `gorm:"type:uuid;not null"`
	TransactionDate time.Time       `gorm:"not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description     string          `gorm:"type:text"`
	Category        string          `gorm:"type:varchar(100);index"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "financial_transactions"
}

// ToDomain converts the persistence model to a domain Transaction entity.
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	return &ledger.Transaction{
		BaseEntity:      m.BaseModel.ToDomain(),
		ClientID:        m.ClientID,
		CreatedBy:       m.CreatedBy,
		TransactionDate: m.TransactionDate,
		Amount:          m.Amount,
		Description:     m.Description,
		Category:        m.Category,
	}
}

// FromDomain populates the persistence model from a domain Transaction entity.
func (m *TransactionModel) FromDomain(tx *ledger.Transaction) {
	m.FromDomainBaseEntity(tx.BaseEntity)
	m.ClientID = tx.ClientID
	m.CreatedBy = tx.CreatedBy
	m.TransactionDate = tx.TransactionDate
	m.Amount = tx.Amount
	m.Description = tx.Description
	m.Category = tx.Category
}
