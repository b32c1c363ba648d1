package audit

import (
	"context"

	"github.com/finapp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LogRepository defines the interface for audit log persistence.
// Entries are write-once; there is deliberately no update or delete.
type LogRepository interface {
	// Create appends a new audit log entry
	Create(ctx context.Context, log *Log) error

	// FindByRecordID finds all entries for a record, newest first
	FindByRecordID(ctx context.Context, recordID uuid.UUID) ([]Log, error)

	// FindAll finds entries matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Log, error)
}
