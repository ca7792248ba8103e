package booking

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByUserID retrieves all bookings belonging to a user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Booking, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// Save persists a new booking together with its item snapshots.
	Save(ctx context.Context, b *Booking) error

	// UpdateStatusFrom performs an atomic compare-and-set of the status,
	// succeeding only when the stored status equals expected.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, expected, next BookingStatus) error

	// CancelUnlessCompleted atomically sets the status to cancelled for any
	// stored status except completed.
	CancelUnlessCompleted(ctx context.Context, id uuid.UUID) error

	// OverrideStatus overwrites the status unconditionally (admin).
	OverrideStatus(ctx context.Context, id uuid.UUID, next BookingStatus) error

	// Delete detaches the booking's item snapshots and removes the row.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByTourPackageID returns the number of bookings referencing a
	// tour package. The catalog delete guard consumes this.
	CountByTourPackageID(ctx context.Context, tourPackageID uuid.UUID) (int64, error)

	// CountPerMonth returns booking counts grouped by calendar month of the
	// booking date, keyed "1".."12".
	CountPerMonth(ctx context.Context) (map[string]int64, error)
}
