package audit

import (
	"time"

	"github.com/finapp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ChangeType classifies the mutation an audit entry records
type ChangeType string

const (
	ChangeTypeCreate ChangeType = "CREATE"
	ChangeTypeUpdate ChangeType = "UPDATE"
	ChangeTypeDelete ChangeType = "DELETE"
)

// IsValid checks if the change type is valid
func (c ChangeType) IsValid() bool {
	switch c {
	case ChangeTypeCreate, ChangeTypeUpdate, ChangeTypeDelete:
		return true
	}
	return false
}

// Log is an append-only record of a tracked mutation.
// ChangedBy is nil for system-initiated changes.
type Log struct {
	ID            uuid.UUID  `json:"id"`
	ChangedBy     *uuid.UUID `json:"changed_by"`
	TableName     string     `json:"table_name"`
	RecordID      uuid.UUID  `json:"record_id"`
	ChangeType    ChangeType `json:"change_type"`
	ChangeDetails string     `json:"change_details"`
	Timestamp     time.Time  `json:"timestamp"`
}

// NewLog creates a new audit log entry timestamped now (UTC)
func NewLog(changedBy *uuid.UUID, tableName string, recordID uuid.UUID, changeType ChangeType, details string) (*Log, error) {
	if tableName == "" {
		return nil, shared.NewDomainError("INVALID_AUDIT", "Audit table name cannot be empty")
	}
	if !changeType.IsValid() {
		return nil, shared.NewDomainError("INVALID_AUDIT", "Audit change type must be CREATE, UPDATE, or DELETE")
	}

	return &Log{
		ID:            uuid.New(),
		ChangedBy:     changedBy,
		TableName:     tableName,
		RecordID:      recordID,
		ChangeType:    changeType,
		ChangeDetails: details,
		Timestamp:     time.Now().UTC(),
	}, nil
}
