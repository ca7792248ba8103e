package review

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for reviews.
type Repository interface {
	// Save persists a new review. Inserts are unconditional: one user may
	// review the same package any number of times.
	Save(ctx context.Context, r *Review) error

	// FindByTourPackageID retrieves all reviews for a package, newest first.
	FindByTourPackageID(ctx context.Context, tourPackageID uuid.UUID) ([]*Review, error)
}
