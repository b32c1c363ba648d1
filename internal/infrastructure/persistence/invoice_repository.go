package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finapp/backend/internal/domain/billing"
	"github.com/finapp/backend/internal/domain/shared"
	"github.com/finapp/backend/internal/infrastructure/persistence/models"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByClientID finds all invoices for a client
func (r *GormInvoiceRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]billing.Invoice, error) {
	var rows []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("invoice_date DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toInvoices(rows)
}

// FindAll finds all invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	filter = filter.Normalize()

	var rows []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Order("invoice_date DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toInvoices(rows)
}

// Search finds invoices matching the criteria
func (r *GormInvoiceRepository) Search(ctx context.Context, criteria billing.SearchCriteria) ([]billing.Invoice, error) {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{})

	if criteria.ClientID != nil {
		query = query.Where("client_id = ?", *criteria.ClientID)
	}
	if criteria.Status != nil {
		query = query.Where("status = ?", criteria.Status.String())
	}
	if criteria.StartDate != nil {
		query = query.Where("invoice_date >= ?", *criteria.StartDate)
	}
	if criteria.EndDate != nil {
		query = query.Where("invoice_date <= ?", *criteria.EndDate)
	}
	if criteria.MinAmount != nil {
		query = query.Where("amount_due >= ?", *criteria.MinAmount)
	}
	if criteria.MaxAmount != nil {
		query = query.Where("amount_due <= ?", *criteria.MaxAmount)
	}
	if criteria.IsOverdue {
		query = query.Where("due_date < ? AND status <> ?", startOfToday(), billing.InvoiceStatusPaid.String())
	}

	var rows []models.InvoiceModel
	if err := query.Order("invoice_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toInvoices(rows)
}

// FindOverdue finds unpaid invoices past their due date, optionally
// scoped to a single client
func (r *GormInvoiceRepository) FindOverdue(ctx context.Context, clientID *uuid.UUID) ([]billing.Invoice, error) {
	query := r.db.WithContext(ctx).
		Where("due_date < ? AND status <> ?", startOfToday(), billing.InvoiceStatusPaid.String())
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}

	var rows []models.InvoiceModel
	if err := query.Order("due_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toInvoices(rows)
}

// Create persists a new invoice
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	var model models.InvoiceModel
	model.FromDomain(invoice)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update persists changes to an existing invoice
func (r *GormInvoiceRepository) Update(ctx context.Context, invoice *billing.Invoice) error {
	var model models.InvoiceModel
	model.FromDomain(invoice)
	result := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("id = ?", model.ID).
		Select("InvoiceDate", "DueDate", "AmountDue", "AmountPaid", "Status", "UpdatedAt").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an invoice by ID
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toInvoices(rows []models.InvoiceModel) ([]billing.Invoice, error) {
	invoices := make([]billing.Invoice, len(rows))
	for i := range rows {
		invoice, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		invoices[i] = *invoice
	}
	return invoices, nil
}

func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
