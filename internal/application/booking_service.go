package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tourvista/service-tours/internal/domain/booking"
	"github.com/tourvista/service-tours/internal/domain/cart"
	"github.com/tourvista/service-tours/internal/events"
	"github.com/tourvista/service-tours/pkg/domain"
	"github.com/tourvista/service-tours/pkg/kafka"
)

const eventSource = "service-tours"

// CreateBookingRequest holds the data needed to check a cart out.
type CreateBookingRequest struct {
	TotalAmountCents *int64 `json:"total_amount_cents"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID               uuid.UUID      `json:"id"`
	UserID           uuid.UUID      `json:"user_id"`
	Items            []booking.Item `json:"items"`
	BookingDate      time.Time      `json:"booking_date"`
	TotalAmountCents int64          `json:"total_amount_cents"`
	Status           string         `json:"status"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	repo     booking.Repository
	carts    cart.Store
	producer EventPublisher
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo booking.Repository,
	carts cart.Store,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:     repo,
		carts:    carts,
		producer: producer,
		logger:   logger,
	}
}

// CreateFromCart checks the session's cart out into a new booking. The cart
// is cleared only after the booking is persisted; on any failure the cart is
// left intact. When the request carries no total the cart's running total is
// used, otherwise the caller-supplied amount is stored as-is.
func (s *BookingService) CreateFromCart(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, domain.NewEmptyCartError()
	}

	items := make([]booking.Item, len(c.Items))
	for i, it := range c.Items {
		items[i] = booking.Item{
			TourPackageID: it.TourPackageID,
			Name:          it.Name,
			PriceCents:    it.PriceCents,
		}
	}

	total := c.TotalPriceCents
	if req.TotalAmountCents != nil {
		total = *req.TotalAmountCents
	}

	bk, err := booking.NewBooking(userID, items, total)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCreated, events.BookingCreatedEvent{
		BookingID:        bk.ID(),
		UserID:           bk.UserID(),
		ItemCount:        len(bk.Items()),
		TotalAmountCents: bk.TotalAmountCents(),
		OccurredAt:       time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// Confirm transitions a booking from created to confirmed. The transition is
// a compare-and-set on the stored status, so two racing confirms cannot both
// succeed.
func (s *BookingService) Confirm(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatusFrom(ctx, bookingID, booking.StatusCreated, booking.StatusConfirmed); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingConfirmed, events.BookingConfirmedEvent{
		BookingID:  bookingID,
		UserID:     bk.UserID(),
		OccurredAt: time.Now().UTC(),
	})

	bk.OverrideStatus(booking.StatusConfirmed)
	result := toBookingDTO(bk)
	return &result, nil
}

// Cancel transitions a booking to cancelled. Re-cancelling a cancelled
// booking succeeds as a no-op; only completed bookings refuse cancellation.
func (s *BookingService) Cancel(ctx context.Context, bookingID, cancelledBy uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CancelUnlessCompleted(ctx, bookingID); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCancelled, events.BookingCancelledEvent{
		BookingID:   bookingID,
		UserID:      bk.UserID(),
		CancelledBy: cancelledBy,
		OccurredAt:  time.Now().UTC(),
	})

	bk.OverrideStatus(booking.StatusCancelled)
	result := toBookingDTO(bk)
	return &result, nil
}

// OverrideStatus forces a booking into an arbitrary status, bypassing the
// transition graph (admin). An unknown status string is a validation error.
func (s *BookingService) OverrideStatus(ctx context.Context, bookingID uuid.UUID, status string) (*BookingDTO, error) {
	next, err := booking.ParseBookingStatus(status)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.repo.OverrideStatus(ctx, bookingID, next); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingStatusOverridden, events.BookingStatusOverriddenEvent{
		BookingID:  bookingID,
		NewStatus:  next.String(),
		OccurredAt: time.Now().UTC(),
	})

	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// Delete removes a booking and its item snapshots (admin).
func (s *BookingService) Delete(ctx context.Context, bookingID uuid.UUID) error {
	if err := s.repo.Delete(ctx, bookingID); err != nil {
		return err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingDeleted, events.BookingDeletedEvent{
		BookingID:  bookingID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// GetBooking retrieves a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetUserBookings retrieves all bookings belonging to a user, newest first.
func (s *BookingService) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingDTO, error) {
	bookings, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, nil
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// CountByTourPackage returns the number of bookings referencing a tour
// package. The catalog delete guard consumes this.
func (s *BookingService) CountByTourPackage(ctx context.Context, tourPackageID uuid.UUID) (int64, error) {
	return s.repo.CountByTourPackageID(ctx, tourPackageID)
}

// --- Helpers ---

func toBookingDTO(bk *booking.Booking) BookingDTO {
	return BookingDTO{
		ID:               bk.ID(),
		UserID:           bk.UserID(),
		Items:            bk.Items(),
		BookingDate:      bk.BookingDate(),
		TotalAmountCents: bk.TotalAmountCents(),
		Status:           bk.Status().String(),
		UpdatedAt:        bk.UpdatedAt(),
	}
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType string, data any) {
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
