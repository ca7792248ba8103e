package review

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourvista/service-tours/pkg/domain"
)

func TestNewReviewValidation(t *testing.T) {
	_, err := NewReview(uuid.Nil, uuid.New(), 4, "great")
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = NewReview(uuid.New(), uuid.Nil, 4, "great")
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	r, err := NewReview(uuid.New(), uuid.New(), 4, "great")
	require.NoError(t, err)
	assert.Equal(t, 4, r.Rating())
	assert.False(t, r.ReviewDate().IsZero())
}

func TestNewReviewCommentLimitCountsCharacters(t *testing.T) {
	// The limit is 2000 characters, not bytes. A 1500-character Cyrillic
	// comment is 3000 bytes and must still be accepted.
	cyrillic := strings.Repeat("ж", 1500)
	_, err := NewReview(uuid.New(), uuid.New(), 5, cyrillic)
	require.NoError(t, err)

	_, err = NewReview(uuid.New(), uuid.New(), 5, strings.Repeat("ж", 2000))
	require.NoError(t, err)

	_, err = NewReview(uuid.New(), uuid.New(), 5, strings.Repeat("ж", 2001))
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}
