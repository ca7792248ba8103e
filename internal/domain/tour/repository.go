package tour

import (
	"context"

	"github.com/google/uuid"
)

// Sort directions accepted by Search.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortableFields lists the field names Search accepts for ordering.
// Anything else falls back to name ordering.
var SortableFields = map[string]bool{
	"name":     true,
	"price":    true,
	"duration": true,
}

// Repository defines the persistence contract for tour packages.
type Repository interface {
	// FindByID retrieves a package by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Package, error)

	// FindAll retrieves the full catalog.
	FindAll(ctx context.Context) ([]*Package, error)

	// FindAvailable retrieves packages currently offered for sale.
	FindAvailable(ctx context.Context) ([]*Package, error)

	// Search performs a case-insensitive substring match on the name.
	// An empty name matches everything. sortField must be one of
	// SortableFields; direction is SortAsc or SortDesc.
	Search(ctx context.Context, name, sortField, direction string) ([]*Package, error)

	// Save persists a new package.
	Save(ctx context.Context, p *Package) error

	// Update persists changes to an existing package.
	Update(ctx context.Context, p *Package) error

	// Delete removes a package. Callers must check the booking reference
	// guard first.
	Delete(ctx context.Context, id uuid.UUID) error
}
