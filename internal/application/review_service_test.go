package application

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	reviewDomain "github.com/tourvista/service-tours/internal/domain/review"
	"github.com/tourvista/service-tours/pkg/domain"
)

// fakeReviewRepo is an in-memory reviewDomain.Repository.
type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []*reviewDomain.Review
}

func (r *fakeReviewRepo) Save(_ context.Context, rev *reviewDomain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = append(r.reviews, rev)
	return nil
}

func (r *fakeReviewRepo) FindByTourPackageID(_ context.Context, tourPackageID uuid.UUID) ([]*reviewDomain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*reviewDomain.Review
	for _, rev := range r.reviews {
		if rev.TourPackageID() == tourPackageID {
			out = append(out, rev)
		}
	}
	return out, nil
}

func newReviewFixture(t *testing.T) (*ReviewService, *fakeTourRepo) {
	t.Helper()
	tours := newFakeTourRepo()
	svc := NewReviewService(&fakeReviewRepo{}, tours, zap.NewNop())
	return svc, tours
}

func TestCreateReview(t *testing.T) {
	svc, tours := newReviewFixture(t)
	ctx := context.Background()
	pkgID := seedPackage(t, tours, "Bali Getaway", 100)

	result, err := svc.CreateReview(ctx, uuid.New(), pkgID, CreateReviewRequest{Rating: 4, Comment: "great"})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Rating)

	reviews, err := svc.ListByTourPackage(ctx, pkgID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestCreateReviewUnknownPackage(t *testing.T) {
	svc, _ := newReviewFixture(t)

	_, err := svc.CreateReview(context.Background(), uuid.New(), uuid.New(), CreateReviewRequest{Rating: 4})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestCreateReviewRepeatsAndOutOfRangeRatings(t *testing.T) {
	svc, tours := newReviewFixture(t)
	ctx := context.Background()
	pkgID := seedPackage(t, tours, "Bali Getaway", 100)
	userID := uuid.New()

	// Every submission inserts; there is no per-user uniqueness and the
	// rating range is not enforced here.
	for _, rating := range []int{1, 5, 42, -3} {
		_, err := svc.CreateReview(ctx, userID, pkgID, CreateReviewRequest{Rating: rating})
		require.NoError(t, err)
	}

	reviews, err := svc.ListByTourPackage(ctx, pkgID)
	require.NoError(t, err)
	assert.Len(t, reviews, 4)
}
