package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics the service publishes to.
const (
	TopicBookingEvents = "booking.events"
	TopicUserEvents    = "user.events"
)

// Event types carried in the CloudEvent envelope.
const (
	BookingCreated          = "booking.created"
	BookingConfirmed        = "booking.confirmed"
	BookingCancelled        = "booking.cancelled"
	BookingStatusOverridden = "booking.status_overridden"
	BookingDeleted          = "booking.deleted"
	UserRegistered          = "user.registered"
)

// BookingCreatedEvent is published when a cart is checked out into a booking.
type BookingCreatedEvent struct {
	BookingID        uuid.UUID `json:"booking_id"`
	UserID           uuid.UUID `json:"user_id"`
	ItemCount        int       `json:"item_count"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// BookingConfirmedEvent is published when a created booking is confirmed.
type BookingConfirmedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is published when a booking is cancelled.
type BookingCancelledEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	UserID      uuid.UUID `json:"user_id"`
	CancelledBy uuid.UUID `json:"cancelled_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BookingStatusOverriddenEvent is published when an administrator forces a
// booking into an arbitrary status.
type BookingStatusOverriddenEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	NewStatus  string    `json:"new_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingDeletedEvent is published when an administrator removes a booking.
type BookingDeletedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// UserRegisteredEvent is published when a new account is created.
type UserRegisteredEvent struct {
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}
