package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookingDomain "github.com/tourvista/service-tours/internal/domain/booking"
	"github.com/tourvista/service-tours/pkg/domain"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID               uuid.UUID          `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID          `gorm:"type:uuid;index;not null"`
	BookingDate      time.Time          `gorm:"not null;index"`
	TotalAmountCents int64              `gorm:"not null"`
	Status           string             `gorm:"not null;size:20;index"`
	UpdatedAt        time.Time          `gorm:"not null"`
	Items            []BookingItemModel `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// BookingItemModel is a tour package snapshot row attached to a booking.
type BookingItemModel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	BookingID     uuid.UUID `gorm:"type:uuid;index;not null"`
	TourPackageID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name          string    `gorm:"not null;size:255"`
	PriceCents    int64     `gorm:"not null"`
	Position      int       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingItemModel) TableName() string {
	return "booking_items"
}

// GormBookingRepository is the GORM-based implementation of the booking
// Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model), nil
}

// FindByUserID retrieves all bookings belonging to a user, newest first.
func (r *GormBookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userID).
		Order("booking_date DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings by user: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bookings[i] = toDomainBooking(&models[i])
	}
	return bookings, nil
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("booking_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bookings[i] = toDomainBooking(&models[i])
	}
	return bookings, total, nil
}

// Save persists a new booking together with its item snapshots.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// UpdateStatusFrom performs an atomic compare-and-set of the status. The
// conditional UPDATE closes the check-then-act window between reading the
// status and writing the transition.
func (r *GormBookingRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, expected, next bookingDomain.BookingStatus) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND status = ?", id, string(expected)).
		Updates(map[string]interface{}{
			"status":     string(next),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.statusUpdateFailure(ctx, id, next)
	}
	return nil
}

// CancelUnlessCompleted atomically sets the status to cancelled for any
// stored status except completed. Re-cancelling is an accepted no-op.
func (r *GormBookingRepository) CancelUnlessCompleted(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND status <> ?", id, string(bookingDomain.StatusCompleted)).
		Updates(map[string]interface{}{
			"status":     string(bookingDomain.StatusCancelled),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to cancel booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.statusUpdateFailure(ctx, id, bookingDomain.StatusCancelled)
	}
	return nil
}

// OverrideStatus overwrites the status unconditionally (admin).
func (r *GormBookingRepository) OverrideStatus(ctx context.Context, id uuid.UUID, next bookingDomain.BookingStatus) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(next),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to override booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id.String())
	}
	return nil
}

// Delete detaches the booking's item snapshots first, then removes the row.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).Delete(&BookingItemModel{}).Error; err != nil {
			return fmt.Errorf("failed to detach booking items: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&BookingModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete booking: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.NewNotFoundError("Booking", id.String())
		}
		return nil
	})
}

// CountByTourPackageID returns the number of bookings referencing a package.
func (r *GormBookingRepository) CountByTourPackageID(ctx context.Context, tourPackageID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&BookingItemModel{}).
		Where("tour_package_id = ?", tourPackageID).
		Distinct("booking_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings by tour package: %w", err)
	}
	return count, nil
}

// CountPerMonth returns booking counts grouped by calendar month.
func (r *GormBookingRepository) CountPerMonth(ctx context.Context) (map[string]int64, error) {
	type monthCount struct {
		Month int
		Count int64
	}
	var results []monthCount
	err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Select("EXTRACT(MONTH FROM booking_date)::int AS month, COUNT(*) AS count").
		Group("month").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings per month: %w", err)
	}

	counts := make(map[string]int64, len(results))
	for _, mc := range results {
		counts[strconv.Itoa(mc.Month)] = mc.Count
	}
	return counts, nil
}

// statusUpdateFailure distinguishes a missing booking from a refused
// transition after a zero-row conditional update.
func (r *GormBookingRepository) statusUpdateFailure(ctx context.Context, id uuid.UUID, next bookingDomain.BookingStatus) error {
	var model BookingModel
	err := r.db.WithContext(ctx).Select("status").Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFoundError("Booking", id.String())
		}
		return fmt.Errorf("failed to inspect booking status: %w", err)
	}
	return domain.NewInvalidStateError(model.Status, string(next))
}

// --- Conversion helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	items := make([]BookingItemModel, len(b.Items()))
	for i, item := range b.Items() {
		items[i] = BookingItemModel{
			BookingID:     b.ID(),
			TourPackageID: item.TourPackageID,
			Name:          item.Name,
			PriceCents:    item.PriceCents,
			Position:      i,
		}
	}
	return &BookingModel{
		ID:               b.ID(),
		UserID:           b.UserID(),
		BookingDate:      b.BookingDate(),
		TotalAmountCents: b.TotalAmountCents(),
		Status:           string(b.Status()),
		UpdatedAt:        b.UpdatedAt(),
		Items:            items,
	}
}

func toDomainBooking(m *BookingModel) *bookingDomain.Booking {
	items := make([]bookingDomain.Item, len(m.Items))
	for i, item := range m.Items {
		items[i] = bookingDomain.Item{
			TourPackageID: item.TourPackageID,
			Name:          item.Name,
			PriceCents:    item.PriceCents,
		}
	}
	return bookingDomain.Reconstruct(
		m.ID,
		m.UserID,
		items,
		m.BookingDate,
		m.TotalAmountCents,
		bookingDomain.BookingStatus(m.Status),
		m.UpdatedAt,
	)
}
