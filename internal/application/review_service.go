package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	reviewDomain "github.com/tourvista/service-tours/internal/domain/review"
	"github.com/tourvista/service-tours/internal/domain/tour"
)

// CreateReviewRequest holds the data for posting a review.
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewDTO is the response representation of a review.
type ReviewDTO struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	TourPackageID uuid.UUID `json:"tour_package_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	ReviewDate    time.Time `json:"review_date"`
}

// ReviewService is the application service for review use cases.
type ReviewService struct {
	reviews reviewDomain.Repository
	tours   tour.Repository
	logger  *zap.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews reviewDomain.Repository, tours tour.Repository, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		tours:   tours,
		logger:  logger,
	}
}

// CreateReview inserts a review for a package. Every submission inserts a
// new row; a user may review the same package any number of times, and the
// rating value is stored as supplied.
func (s *ReviewService) CreateReview(ctx context.Context, userID, tourPackageID uuid.UUID, req CreateReviewRequest) (*ReviewDTO, error) {
	if _, err := s.tours.FindByID(ctx, tourPackageID); err != nil {
		return nil, err
	}

	rev, err := reviewDomain.NewReview(userID, tourPackageID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.reviews.Save(ctx, rev); err != nil {
		return nil, err
	}

	result := toReviewDTO(rev)
	return &result, nil
}

// ListByTourPackage retrieves all reviews for a package, newest first.
func (s *ReviewService) ListByTourPackage(ctx context.Context, tourPackageID uuid.UUID) ([]ReviewDTO, error) {
	reviews, err := s.reviews.FindByTourPackageID(ctx, tourPackageID)
	if err != nil {
		return nil, err
	}

	dtos := make([]ReviewDTO, len(reviews))
	for i, rev := range reviews {
		dtos[i] = toReviewDTO(rev)
	}
	return dtos, nil
}

func toReviewDTO(r *reviewDomain.Review) ReviewDTO {
	return ReviewDTO{
		ID:            r.ID(),
		UserID:        r.UserID(),
		TourPackageID: r.TourPackageID(),
		Rating:        r.Rating(),
		Comment:       r.Comment(),
		ReviewDate:    r.ReviewDate(),
	}
}
