package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/finapp/backend/internal/domain/audit"
)

// AuditLogModel is the persistence model for audit log entries.
// Rows are append-only; there is no updated_at.
type AuditLogModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key"`
	ChangedBy     *uuid.UUID `gorm:"type:uuid;index"`
	Table         string     `gorm:"column:table_name;type:varchar(100);not null;index"`
	RecordID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ChangeType    string     `gorm:"type:varchar(20);not null"`
	ChangeDetails string     `gorm:"type:text"`
	Timestamp     time.Time  `gorm:"not null;index"`
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}

func (m *AuditLogModel) ToDomain() *audit.Log {
	return &audit.Log{
		ID:            m.ID,
		ChangedBy:     m.ChangedBy,
		TableName:     m.Table,
		RecordID:      m.RecordID,
		ChangeType:    audit.ChangeType(m.ChangeType),
		ChangeDetails: m.ChangeDetails,
		Timestamp:     m.Timestamp,
	}
}

func (m *AuditLogModel) FromDomain(l *audit.Log) {
	m.ID = l.ID
	m.ChangedBy = l.ChangedBy
	m.Table = l.TableName
	m.RecordID = l.RecordID
	m.ChangeType = string(l.ChangeType)
	m.ChangeDetails = l.ChangeDetails
	m.Timestamp = l.Timestamp
}
