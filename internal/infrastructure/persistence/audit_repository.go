package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finapp/backend/internal/domain/audit"
	"github.com/finapp/backend/internal/domain/shared"
	"github.com/finapp/backend/internal/infrastructure/persistence/models"
)

// GormAuditLogRepository implements LogRepository using GORM.
// Entries are append-only; the repository exposes no update or delete.
type GormAuditLogRepository struct {
	db *gorm.DB
}

func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Create appends a new audit log entry
func (r *GormAuditLogRepository) Create(ctx context.Context, log *audit.Log) error {
	var model models.AuditLogModel
	model.FromDomain(log)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByRecordID finds all entries for a record, newest first
func (r *GormAuditLogRepository) FindByRecordID(ctx context.Context, recordID uuid.UUID) ([]audit.Log, error) {
	var rows []models.AuditLogModel
	if err := r.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		Order("timestamp DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toLogs(rows), nil
}

// FindAll finds entries matching the filter, newest first
func (r *GormAuditLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.Log, error) {
	filter = filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.AuditLogModel{})
	if filter.Search != "" {
		query = query.Where("table_name = ?", filter.Search)
	}

	var rows []models.AuditLogModel
	if err := query.
		Order("timestamp DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toLogs(rows), nil
}

func toLogs(rows []models.AuditLogModel) []audit.Log {
	logs := make([]audit.Log, len(rows))
	for i := range rows {
		logs[i] = *rows[i].ToDomain()
	}
	return logs
}

var _ audit.LogRepository = (*GormAuditLogRepository)(nil)
