package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/tourvista/service-tours/pkg/domain"
)

// Item is a snapshot of a tour package taken from the cart at booking time.
// The referenced package may be edited later; the snapshot keeps the name
// and price the customer actually booked.
type Item struct {
	TourPackageID uuid.UUID `json:"tour_package_id"`
	Name          string    `json:"name"`
	PriceCents    int64     `json:"price_cents"`
}

// Booking is the aggregate root for a persisted reservation.
type Booking struct {
	id               uuid.UUID
	userID           uuid.UUID
	items            []Item
	bookingDate      time.Time
	totalAmountCents int64
	status           BookingStatus
	updatedAt        time.Time
}

// NewBooking creates a booking in status created from cart item snapshots.
// The total amount is taken from the caller rather than recomputed from the
// items, matching the inherited contract.
func NewBooking(userID uuid.UUID, items []Item, totalAmountCents int64) (*Booking, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if len(items) == 0 {
		return nil, domain.NewEmptyCartError()
	}

	now := time.Now().UTC()
	snapshot := make([]Item, len(items))
	copy(snapshot, items)

	return &Booking{
		id:               uuid.New(),
		userID:           userID,
		items:            snapshot,
		bookingDate:      now,
		totalAmountCents: totalAmountCents,
		status:           StatusCreated,
		updatedAt:        now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, userID uuid.UUID,
	items []Item,
	bookingDate time.Time,
	totalAmountCents int64,
	status BookingStatus,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:               id,
		userID:           userID,
		items:            items,
		bookingDate:      bookingDate,
		totalAmountCents: totalAmountCents,
		status:           status,
		updatedAt:        updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// UserID returns the owning user's ID.
func (b *Booking) UserID() uuid.UUID { return b.userID }

// Items returns the tour package snapshots held by this booking.
func (b *Booking) Items() []Item { return b.items }

// BookingDate returns the creation timestamp.
func (b *Booking) BookingDate() time.Time { return b.bookingDate }

// TotalAmountCents returns the booked total in currency minor units.
func (b *Booking) TotalAmountCents() int64 { return b.totalAmountCents }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// Confirm transitions the booking from created to confirmed.
func (b *Booking) Confirm() error {
	if b.status != StatusCreated {
		return domain.NewInvalidStateError(string(b.status), string(StatusConfirmed))
	}
	b.status = StatusConfirmed
	b.updatedAt = time.Now().UTC()
	return nil
}

// Cancel transitions the booking to cancelled. Cancelling an already
// cancelled booking succeeds and leaves it cancelled.
func (b *Booking) Cancel() error {
	if !b.status.CanBeCancelled() {
		return domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	b.status = StatusCancelled
	b.updatedAt = time.Now().UTC()
	return nil
}

// OverrideStatus sets the status unconditionally, bypassing the transition
// graph. Administrative path only; callers must parse the status first.
func (b *Booking) OverrideStatus(status BookingStatus) {
	b.status = status
	b.updatedAt = time.Now().UTC()
}
