package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tourvista/service-tours/internal/domain/tour"
	"github.com/tourvista/service-tours/internal/repository"
	"github.com/tourvista/service-tours/pkg/domain"
)

func newCartFixture(t *testing.T) (*CartService, *fakeTourRepo) {
	t.Helper()
	tours := newFakeTourRepo()
	svc := NewCartService(repository.NewMemoryCartStore(), tours, zap.NewNop())
	return svc, tours
}

func seedPackage(t *testing.T, tours *fakeTourRepo, name string, priceCents int64) uuid.UUID {
	t.Helper()
	p, err := tour.NewPackage(name, "", "", priceCents, true, 3)
	require.NoError(t, err)
	require.NoError(t, tours.Save(context.Background(), p))
	return p.ID()
}

func TestCartAddItemResolvesPackage(t *testing.T) {
	svc, tours := newCartFixture(t)
	ctx := context.Background()
	session := uuid.New()

	baliID := seedPackage(t, tours, "Bali Getaway", 100)
	kyotoID := seedPackage(t, tours, "Kyoto Temples", 250)

	_, err := svc.AddItem(ctx, session, baliID)
	require.NoError(t, err)
	result, err := svc.AddItem(ctx, session, kyotoID)
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assert.Equal(t, "Bali Getaway", result.Items[0].Name)
	assert.Equal(t, int64(350), result.TotalPriceCents)
}

func TestCartAddItemUnknownPackage(t *testing.T) {
	svc, _ := newCartFixture(t)

	_, err := svc.AddItem(context.Background(), uuid.New(), uuid.New())
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestCartRemoveItem(t *testing.T) {
	svc, tours := newCartFixture(t)
	ctx := context.Background()
	session := uuid.New()

	baliID := seedPackage(t, tours, "Bali Getaway", 100)
	_, err := svc.AddItem(ctx, session, baliID)
	require.NoError(t, err)

	result, err := svc.RemoveItem(ctx, session, baliID)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, int64(0), result.TotalPriceCents)

	// Removing an absent package is a silent no-op.
	result, err = svc.RemoveItem(ctx, session, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestCartClear(t *testing.T) {
	svc, tours := newCartFixture(t)
	ctx := context.Background()
	session := uuid.New()

	baliID := seedPackage(t, tours, "Bali Getaway", 100)
	_, err := svc.AddItem(ctx, session, baliID)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, session))

	result, err := svc.Get(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}
