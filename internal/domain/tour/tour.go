package tour

import (
	"time"

	"github.com/google/uuid"

	"github.com/tourvista/service-tours/pkg/domain"
)

// Package is the aggregate root for a purchasable tour offering.
type Package struct {
	id           uuid.UUID
	name         string
	description  string
	imageURL     string
	priceCents   int64
	availability bool
	durationDays int
	createdAt    time.Time
	updatedAt    time.Time
}

// NewPackage creates a tour package with validated fields.
func NewPackage(name, description, imageURL string, priceCents int64, availability bool, durationDays int) (*Package, error) {
	if name == "" {
		return nil, domain.NewValidationError("package name is required")
	}
	if priceCents < 0 {
		return nil, domain.NewValidationError("price cannot be negative")
	}
	if durationDays < 0 {
		return nil, domain.NewValidationError("duration cannot be negative")
	}

	now := time.Now().UTC()
	return &Package{
		id:           uuid.New(),
		name:         name,
		description:  description,
		imageURL:     imageURL,
		priceCents:   priceCents,
		availability: availability,
		durationDays: durationDays,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a Package from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	name, description, imageURL string,
	priceCents int64,
	availability bool,
	durationDays int,
	createdAt, updatedAt time.Time,
) *Package {
	return &Package{
		id:           id,
		name:         name,
		description:  description,
		imageURL:     imageURL,
		priceCents:   priceCents,
		availability: availability,
		durationDays: durationDays,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// --- Getters ---

func (p *Package) ID() uuid.UUID        { return p.id }
func (p *Package) Name() string         { return p.name }
func (p *Package) Description() string  { return p.description }
func (p *Package) ImageURL() string     { return p.imageURL }
func (p *Package) PriceCents() int64    { return p.priceCents }
func (p *Package) Availability() bool   { return p.availability }
func (p *Package) DurationDays() int    { return p.durationDays }
func (p *Package) CreatedAt() time.Time { return p.createdAt }
func (p *Package) UpdatedAt() time.Time { return p.updatedAt }

// --- Behavior ---

// Update overwrites every editable field, matching the full-overwrite
// contract of the update operation.
func (p *Package) Update(name, description, imageURL string, priceCents int64, availability bool, durationDays int) error {
	if name == "" {
		return domain.NewValidationError("package name is required")
	}
	if priceCents < 0 {
		return domain.NewValidationError("price cannot be negative")
	}
	if durationDays < 0 {
		return domain.NewValidationError("duration cannot be negative")
	}

	p.name = name
	p.description = description
	p.imageURL = imageURL
	p.priceCents = priceCents
	p.availability = availability
	p.durationDays = durationDays
	p.updatedAt = time.Now().UTC()
	return nil
}
