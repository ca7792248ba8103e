package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	tourDomain "github.com/tourvista/service-tours/internal/domain/tour"
	"github.com/tourvista/service-tours/pkg/domain"
)

// TourPackageModel is the GORM model for the tour_packages table.
type TourPackageModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null;size:255;index"`
	Description  string    `gorm:"type:text"`
	ImageURL     string    `gorm:"size:512"`
	PriceCents   int64     `gorm:"not null"`
	Availability bool      `gorm:"not null;default:true"`
	DurationDays int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (TourPackageModel) TableName() string {
	return "tour_packages"
}

// GormTourRepository is the GORM-based implementation of the tour Repository.
type GormTourRepository struct {
	db *gorm.DB
}

// NewGormTourRepository creates a new GormTourRepository.
func NewGormTourRepository(db *gorm.DB) *GormTourRepository {
	return &GormTourRepository{db: db}
}

// FindByID retrieves a package by its unique identifier.
func (r *GormTourRepository) FindByID(ctx context.Context, id uuid.UUID) (*tourDomain.Package, error) {
	var model TourPackageModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("TourPackage", id.String())
		}
		return nil, fmt.Errorf("failed to find tour package by ID: %w", err)
	}
	return toDomainPackage(&model), nil
}

// FindAll retrieves the full catalog ordered by name.
func (r *GormTourRepository) FindAll(ctx context.Context) ([]*tourDomain.Package, error) {
	var models []TourPackageModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list tour packages: %w", err)
	}
	return toDomainPackages(models), nil
}

// FindAvailable retrieves packages currently offered for sale.
func (r *GormTourRepository) FindAvailable(ctx context.Context) ([]*tourDomain.Package, error) {
	var models []TourPackageModel
	if err := r.db.WithContext(ctx).Where("availability = ?", true).Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list available tour packages: %w", err)
	}
	return toDomainPackages(models), nil
}

// sortColumns maps the whitelisted sort field names to their columns.
var sortColumns = map[string]string{
	"name":     "name",
	"price":    "price_cents",
	"duration": "duration_days",
}

// Search performs a case-insensitive substring match on the name, sorted by
// a whitelisted field. An empty name returns the whole sorted catalog.
func (r *GormTourRepository) Search(ctx context.Context, name, sortField, direction string) ([]*tourDomain.Package, error) {
	column, ok := sortColumns[sortField]
	if !ok {
		column = "name"
	}
	dir := "ASC"
	if strings.EqualFold(direction, tourDomain.SortDesc) {
		dir = "DESC"
	}

	query := r.db.WithContext(ctx).Model(&TourPackageModel{})
	if name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var models []TourPackageModel
	if err := query.Order(column + " " + dir).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to search tour packages: %w", err)
	}
	return toDomainPackages(models), nil
}

// Save persists a new package.
func (r *GormTourRepository) Save(ctx context.Context, p *tourDomain.Package) error {
	if err := r.db.WithContext(ctx).Create(toPackageModel(p)).Error; err != nil {
		return fmt.Errorf("failed to save tour package: %w", err)
	}
	return nil
}

// Update persists changes to an existing package.
func (r *GormTourRepository) Update(ctx context.Context, p *tourDomain.Package) error {
	model := toPackageModel(p)
	result := r.db.WithContext(ctx).
		Model(&TourPackageModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":          model.Name,
			"description":   model.Description,
			"image_url":     model.ImageURL,
			"price_cents":   model.PriceCents,
			"availability":  model.Availability,
			"duration_days": model.DurationDays,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update tour package: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("TourPackage", p.ID().String())
	}
	return nil
}

// Delete removes a package. The booking reference guard runs at the service
// layer before this is called.
func (r *GormTourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&TourPackageModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete tour package: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("TourPackage", id.String())
	}
	return nil
}

// --- Conversion helpers ---

func toPackageModel(p *tourDomain.Package) *TourPackageModel {
	return &TourPackageModel{
		ID:           p.ID(),
		Name:         p.Name(),
		Description:  p.Description(),
		ImageURL:     p.ImageURL(),
		PriceCents:   p.PriceCents(),
		Availability: p.Availability(),
		DurationDays: p.DurationDays(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

func toDomainPackage(m *TourPackageModel) *tourDomain.Package {
	return tourDomain.Reconstruct(
		m.ID,
		m.Name,
		m.Description,
		m.ImageURL,
		m.PriceCents,
		m.Availability,
		m.DurationDays,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainPackages(models []TourPackageModel) []*tourDomain.Package {
	packages := make([]*tourDomain.Package, len(models))
	for i := range models {
		packages[i] = toDomainPackage(&models[i])
	}
	return packages
}
