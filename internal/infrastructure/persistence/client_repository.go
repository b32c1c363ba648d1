package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finapp/backend/internal/domain/partner"
	"github.com/finapp/backend/internal/domain/shared"
	"github.com/finapp/backend/internal/infrastructure/persistence/models"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a client by its exact name
func (r *GormClientRepository) FindByName(ctx context.Context, name string) (*partner.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a client by its contact email
func (r *GormClientRepository) FindByEmail(ctx context.Context, email string) (*partner.Client, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("contact_email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIndustry finds all clients in an industry
func (r *GormClientRepository) FindByIndustry(ctx context.Context, industry string) ([]partner.Client, error) {
	var rows []models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("industry = ?", industry).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toClients(rows), nil
}

// FindAll finds all clients matching the filter
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	filter = filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.ClientModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR industry ILIKE ?", pattern, pattern)
	}

	var rows []models.ClientModel
	if err := query.
		Order("name ASC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toClients(rows), nil
}

// Search finds clients whose name or industry matches the term
func (r *GormClientRepository) Search(ctx context.Context, term string) ([]partner.Client, error) {
	pattern := "%" + term + "%"
	var rows []models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR industry ILIKE ?", pattern, pattern).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toClients(rows), nil
}

// Create persists a new client
func (r *GormClientRepository) Create(ctx context.Context, client *partner.Client) error {
	var model models.ClientModel
	model.FromDomain(client)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists changes to an existing client
func (r *GormClientRepository) Update(ctx context.Context, client *partner.Client) error {
	var model models.ClientModel
	model.FromDomain(client)
	result := r.db.WithContext(ctx).Model(&models.ClientModel{}).
		Where("id = ?", model.ID).
		Select("Name", "Industry", "ContactEmail", "ContactPhone", "Address", "UpdatedAt").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a client by ID
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toClients(rows []models.ClientModel) []partner.Client {
	clients := make([]partner.Client, len(rows))
	for i := range rows {
		clients[i] = *rows[i].ToDomain()
	}
	return clients
}

var _ partner.ClientRepository = (*GormClientRepository)(nil)
