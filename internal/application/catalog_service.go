package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tourvista/service-tours/internal/domain/booking"
	"github.com/tourvista/service-tours/internal/domain/tour"
	"github.com/tourvista/service-tours/pkg/domain"
)

// TourPackageRequest holds the data for creating or fully overwriting a
// tour package.
type TourPackageRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	PriceCents   int64  `json:"price_cents"`
	Availability bool   `json:"availability"`
	DurationDays int    `json:"duration_days"`
}

// TourPackageDTO is the response representation of a tour package.
type TourPackageDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	PriceCents   int64     `json:"price_cents"`
	Availability bool      `json:"availability"`
	DurationDays int       `json:"duration_days"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CatalogService is the application service for tour package use cases.
type CatalogService struct {
	tours    tour.Repository
	bookings booking.Repository
	logger   *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(tours tour.Repository, bookings booking.Repository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		tours:    tours,
		bookings: bookings,
		logger:   logger,
	}
}

// CreatePackage adds a new tour package to the catalog.
func (s *CatalogService) CreatePackage(ctx context.Context, req TourPackageRequest) (*TourPackageDTO, error) {
	pkg, err := tour.NewPackage(req.Name, req.Description, req.ImageURL, req.PriceCents, req.Availability, req.DurationDays)
	if err != nil {
		return nil, err
	}

	if err := s.tours.Save(ctx, pkg); err != nil {
		return nil, err
	}

	result := toTourPackageDTO(pkg)
	return &result, nil
}

// UpdatePackage overwrites every editable field of an existing package.
func (s *CatalogService) UpdatePackage(ctx context.Context, id uuid.UUID, req TourPackageRequest) (*TourPackageDTO, error) {
	pkg, err := s.tours.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := pkg.Update(req.Name, req.Description, req.ImageURL, req.PriceCents, req.Availability, req.DurationDays); err != nil {
		return nil, err
	}

	if err := s.tours.Update(ctx, pkg); err != nil {
		return nil, err
	}

	result := toTourPackageDTO(pkg)
	return &result, nil
}

// GetPackage retrieves a single package by ID.
func (s *CatalogService) GetPackage(ctx context.Context, id uuid.UUID) (*TourPackageDTO, error) {
	pkg, err := s.tours.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toTourPackageDTO(pkg)
	return &result, nil
}

// ListPackages retrieves the whole catalog.
func (s *CatalogService) ListPackages(ctx context.Context) ([]TourPackageDTO, error) {
	pkgs, err := s.tours.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toTourPackageDTOs(pkgs), nil
}

// ListAvailablePackages retrieves only packages currently open for booking.
func (s *CatalogService) ListAvailablePackages(ctx context.Context) ([]TourPackageDTO, error) {
	pkgs, err := s.tours.FindAvailable(ctx)
	if err != nil {
		return nil, err
	}
	return toTourPackageDTOs(pkgs), nil
}

// SearchPackages performs a case-insensitive substring search on the package
// name with whitelisted sorting. An empty name matches everything.
func (s *CatalogService) SearchPackages(ctx context.Context, name, sortField, direction string) ([]TourPackageDTO, error) {
	pkgs, err := s.tours.Search(ctx, name, sortField, direction)
	if err != nil {
		return nil, err
	}
	return toTourPackageDTOs(pkgs), nil
}

// CanDeletePackage reports whether the package is free of booking
// references.
func (s *CatalogService) CanDeletePackage(ctx context.Context, id uuid.UUID) (bool, error) {
	count, err := s.bookings.CountByTourPackageID(ctx, id)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// DeletePackage removes a package from the catalog. A package referenced by
// any booking cannot be deleted.
func (s *CatalogService) DeletePackage(ctx context.Context, id uuid.UUID) error {
	ok, err := s.CanDeletePackage(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewHasReferencesError("TourPackage", id.String())
	}
	return s.tours.Delete(ctx, id)
}

// --- Helpers ---

func toTourPackageDTO(p *tour.Package) TourPackageDTO {
	return TourPackageDTO{
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

func toTourPackageDTOs(pkgs []*tour.Package) []TourPackageDTO {
	dtos := make([]TourPackageDTO, len(pkgs))
	for i, p := range pkgs {
		dtos[i] = toTourPackageDTO(p)
	}
	return dtos
}
