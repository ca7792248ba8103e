package review

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tourvista/service-tours/pkg/domain"
)

const maxCommentLength = 2000

// Review is a rated comment attached to a tour package. Immutable after
// creation; there is no update path.
type Review struct {
	id            uuid.UUID
	userID        uuid.UUID
	tourPackageID uuid.UUID
	rating        int
	comment       string
	reviewDate    time.Time
}

// NewReview creates a review stamped with the current time. The rating is
// stored as supplied; range enforcement is deliberately absent at this
// layer, matching the inherited behavior.
func NewReview(userID, tourPackageID uuid.UUID, rating int, comment string) (*Review, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if tourPackageID == uuid.Nil {
		return nil, domain.NewValidationError("tour package ID is required")
	}
	if utf8.RuneCountInString(comment) > maxCommentLength {
		return nil, domain.NewValidationError("comment exceeds 2000 characters")
	}

	return &Review{
		id:            uuid.New(),
		userID:        userID,
		tourPackageID: tourPackageID,
		rating:        rating,
		comment:       comment,
		reviewDate:    time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Review from persistence data (no validation).
func Reconstruct(id, userID, tourPackageID uuid.UUID, rating int, comment string, reviewDate time.Time) *Review {
	return &Review{
		id:            id,
		userID:        userID,
		tourPackageID: tourPackageID,
		rating:        rating,
		comment:       comment,
		reviewDate:    reviewDate,
	}
}

func (r *Review) ID() uuid.UUID            { return r.id }
func (r *Review) UserID() uuid.UUID        { return r.userID }
func (r *Review) TourPackageID() uuid.UUID { return r.tourPackageID }
func (r *Review) Rating() int              { return r.rating }
func (r *Review) Comment() string          { return r.comment }
func (r *Review) ReviewDate() time.Time    { return r.reviewDate }
