package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/finapp/backend/internal/domain/audit"
	"github.com/finapp/backend/internal/domain/shared"
)

// Recorder appends audit trail entries for tracked mutations.
// Writes are synchronous; a failed audit write surfaces to the caller,
// which does not roll back the business mutation that preceded it.
type Recorder struct {
	logs audit.LogRepository
}

// NewRecorder creates a new Recorder
func NewRecorder(logs audit.LogRepository) *Recorder {
	return &Recorder{logs: logs}
}

// LogChange appends one audit entry for a create/update/delete of a
// tracked record. changedBy is nil for system-initiated changes.
func (r *Recorder) LogChange(ctx context.Context, changedBy *uuid.UUID, tableName string, recordID uuid.UUID, changeType audit.ChangeType, details string) error {
	entry, err := audit.NewLog(changedBy, tableName, recordID, changeType, details)
	if err != nil {
		return err
	}
	return r.logs.Create(ctx, entry)
}

// History returns the audit entries for a record, newest first
func (r *Recorder) History(ctx context.Context, recordID uuid.UUID) ([]audit.Log, error) {
	return r.logs.FindByRecordID(ctx, recordID)
}

// List returns audit entries matching the filter, newest first.
// Filter.Search narrows to a single table name.
func (r *Recorder) List(ctx context.Context, filter shared.Filter) ([]audit.Log, error) {
	return r.logs.FindAll(ctx, filter)
}
