package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/tourvista/service-tours/internal/domain/booking"
	userDomain "github.com/tourvista/service-tours/internal/domain/user"
)

// UserStatsDTO holds account statistics for the admin dashboard.
type UserStatsDTO struct {
	TotalUsers int64            `json:"total_users"`
	ByRole     map[string]int64 `json:"by_role"`
}

// BookingStatsDTO holds booking statistics for the admin dashboard. Months
// are keyed "1" through "12"; months with no bookings are absent.
type BookingStatsDTO struct {
	PerMonth map[string]int64 `json:"per_month"`
}

// StatisticsService computes dashboard aggregates. Every call recomputes
// from storage; there is no caching layer.
type StatisticsService struct {
	users    userDomain.Repository
	bookings booking.Repository
	logger   *zap.Logger
}

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(users userDomain.Repository, bookings booking.Repository, logger *zap.Logger) *StatisticsService {
	return &StatisticsService{
		users:    users,
		bookings: bookings,
		logger:   logger,
	}
}

// GetUserStats returns the total user count and the per-role breakdown.
func (s *StatisticsService) GetUserStats(ctx context.Context) (*UserStatsDTO, error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	return &UserStatsDTO{
		TotalUsers: total,
		ByRole:     byRole,
	}, nil
}

// GetBookingStats returns booking counts grouped by calendar month of the
// booking date.
func (s *StatisticsService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	perMonth, err := s.bookings.CountPerMonth(ctx)
	if err != nil {
		return nil, err
	}

	return &BookingStatsDTO{PerMonth: perMonth}, nil
}
