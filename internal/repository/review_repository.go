package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	reviewDomain "github.com/tourvista/service-tours/internal/domain/review"
)

// ReviewModel is the GORM model for the reviews table.
type ReviewModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null"`
	TourPackageID uuid.UUID `gorm:"type:uuid;index;not null"`
	Rating        int       `gorm:"not null"`
	Comment       string    `gorm:"size:2000"`
	ReviewDate    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ReviewModel) TableName() string {
	return "reviews"
}

// GormReviewRepository is the GORM-based implementation of the review
// Repository.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Save persists a new review.
func (r *GormReviewRepository) Save(ctx context.Context, rev *reviewDomain.Review) error {
	model := &ReviewModel{
		ID:            rev.ID(),
		UserID:        rev.UserID(),
		TourPackageID: rev.TourPackageID(),
		Rating:        rev.Rating(),
		Comment:       rev.Comment(),
		ReviewDate:    rev.ReviewDate(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}
	return nil
}

// FindByTourPackageID retrieves all reviews for a package, newest first.
func (r *GormReviewRepository) FindByTourPackageID(ctx context.Context, tourPackageID uuid.UUID) ([]*reviewDomain.Review, error) {
	var models []ReviewModel
	err := r.db.WithContext(ctx).
		Where("tour_package_id = ?", tourPackageID).
		Order("review_date DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := make([]*reviewDomain.Review, len(models))
	for i, m := range models {
		reviews[i] = reviewDomain.Reconstruct(m.ID, m.UserID, m.TourPackageID, m.Rating, m.Comment, m.ReviewDate)
	}
	return reviews, nil
}
