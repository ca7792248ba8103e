//go:build integration

package main_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/redis/go-redis/v9"

	"github.com/tourvista/service-tours/internal/application"
	"github.com/tourvista/service-tours/internal/domain/cart"
	"github.com/tourvista/service-tours/internal/events"
	"github.com/tourvista/service-tours/internal/repository"
	"github.com/tourvista/service-tours/pkg/domain"
)

// TestBookingLifecycle walks a booking from cart through checkout, confirm
// and cancel against real PostgreSQL and Kafka.
func TestBookingLifecycle(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupToursStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()
	userID := uuid.New()

	bali, err := stack.Catalog.CreatePackage(ctx, application.TourPackageRequest{
		Name: "Bali Getaway", PriceCents: 100, Availability: true, DurationDays: 5,
	})
	require.NoError(t, err)
	kyoto, err := stack.Catalog.CreatePackage(ctx, application.TourPackageRequest{
		Name: "Kyoto Temples", PriceCents: 250, Availability: true, DurationDays: 7,
	})
	require.NoError(t, err)

	_, err = stack.Cart.AddItem(ctx, userID, bali.ID)
	require.NoError(t, err)
	cartNow, err := stack.Cart.AddItem(ctx, userID, kyoto.ID)
	require.NoError(t, err)
	require.Equal(t, int64(350), cartNow.TotalPriceCents)

	created, err := stack.Bookings.CreateFromCart(ctx, userID, application.CreateBookingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "created", created.Status)
	assert.Equal(t, int64(350), created.TotalAmountCents)
	require.Len(t, created.Items, 2)

	// Checkout cleared the cart.
	emptied, err := stack.Cart.Get(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, emptied.Items)

	// Item snapshots survive a later catalog edit.
	_, err = stack.Catalog.UpdatePackage(ctx, bali.ID, application.TourPackageRequest{
		Name: "Bali Premium", PriceCents: 99999, Availability: true, DurationDays: 5,
	})
	require.NoError(t, err)
	reread, err := stack.Bookings.GetBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bali Getaway", reread.Items[0].Name)
	assert.Equal(t, int64(100), reread.Items[0].PriceCents)

	confirmed, err := stack.Bookings.Confirm(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", confirmed.Status)

	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicBookingEvents, events.BookingConfirmed, 15*time.Second)
	var evt events.BookingConfirmedEvent
	require.NoError(t, ce.ParseData(&evt))
	assert.Equal(t, created.ID, evt.BookingID)

	// Confirm is CAS-guarded; a second confirm finds status "confirmed".
	_, err = stack.Bookings.Confirm(ctx, created.ID)
	assert.True(t, domain.IsKind(err, domain.KindInvalidState))

	cancelled, err := stack.Bookings.Cancel(ctx, created.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	// Re-cancel is idempotent.
	_, err = stack.Bookings.Cancel(ctx, created.ID, userID)
	assert.NoError(t, err)
}

// TestCatalogDeleteGuard verifies a package referenced by a booking cannot
// be removed until the booking is deleted.
func TestCatalogDeleteGuard(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupToursStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()
	userID := uuid.New()

	pkg, err := stack.Catalog.CreatePackage(ctx, application.TourPackageRequest{
		Name: "Bali Getaway", PriceCents: 100, Availability: true,
	})
	require.NoError(t, err)

	_, err = stack.Cart.AddItem(ctx, userID, pkg.ID)
	require.NoError(t, err)
	created, err := stack.Bookings.CreateFromCart(ctx, userID, application.CreateBookingRequest{})
	require.NoError(t, err)

	err = stack.Catalog.DeletePackage(ctx, pkg.ID)
	assert.True(t, domain.IsKind(err, domain.KindHasReferences))

	// Deleting the booking detaches its item snapshots first, releasing
	// the reference.
	require.NoError(t, stack.Bookings.Delete(ctx, created.ID))
	require.NoError(t, stack.Catalog.DeletePackage(ctx, pkg.ID))
}

// TestUserRegistrationAndLogin exercises the account flow against the
// database-backed repository, including the duplicate-username guard.
func TestUserRegistrationAndLogin(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupToursStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()

	created, err := stack.Users.Register(ctx, application.RegisterRequest{
		Username: "alice", Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "USER", created.Role)

	_, err = stack.Users.Register(ctx, application.RegisterRequest{
		Username: "alice", Password: "other-pass-1",
	})
	assert.True(t, domain.IsKind(err, domain.KindDuplicate))

	login, err := stack.Users.Login(ctx, application.LoginRequest{
		Username: "alice", Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)

	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicUserEvents, events.UserRegistered, 15*time.Second)
	var evt events.UserRegisteredEvent
	require.NoError(t, ce.ParseData(&evt))
	assert.Equal(t, "alice", evt.Username)
}

// TestRedisCartStore exercises the Redis-backed cart store against a real
// Redis container.
func TestRedisCartStore(t *testing.T) {
	ctx := context.Background()

	redisReq := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: redisReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start Redis container")
	defer func() { _ = redisContainer.Terminate(ctx) }()

	host, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	port, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: host + ":" + port.Port()})
	defer func() { _ = client.Close() }()

	store := repository.NewRedisCartStore(client)
	session := uuid.New()

	c, err := store.AddItem(ctx, session, cart.Item{TourPackageID: uuid.New(), Name: "Bali Getaway", PriceCents: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(100), c.TotalPriceCents)

	item := cart.Item{TourPackageID: uuid.New(), Name: "Kyoto Temples", PriceCents: 250}
	c, err = store.AddItem(ctx, session, item)
	require.NoError(t, err)
	assert.Equal(t, int64(350), c.TotalPriceCents)
	require.Len(t, c.Items, 2)

	c, err = store.RemoveItem(ctx, session, item.TourPackageID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), c.TotalPriceCents)

	require.NoError(t, store.Clear(ctx, session))
	c, err = store.Get(ctx, session)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	// Parallel adds against one session must not lose updates. The WATCH
	// loop surfaces contention as a conflict, which callers retry.
	concurrent := uuid.New()
	const workers = 8
	const perWorker = 10

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				for {
					_, err := store.AddItem(ctx, concurrent, cart.Item{
						TourPackageID: uuid.New(),
						Name:          "Bali Getaway",
						PriceCents:    100,
					})
					if err == nil {
						break
					}
					if !domain.IsKind(err, domain.KindConflict) {
						t.Errorf("unexpected add error: %v", err)
						return
					}
				}
			}
		}()
	}
	wg.Wait()

	c, err = store.Get(ctx, concurrent)
	require.NoError(t, err)
	assert.Len(t, c.Items, workers*perWorker)
	assert.Equal(t, int64(workers*perWorker*100), c.TotalPriceCents)
}
