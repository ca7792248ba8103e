package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tourvista/service-tours/internal/domain/cart"
	"github.com/tourvista/service-tours/pkg/domain"
)

const (
	cartKeyPrefix    = "cart:"
	cartTTL          = 24 * time.Hour
	cartWatchRetries = 5
)

// RedisCartStore keeps carts in Redis as JSON values, one key per session.
// Mutations run under WATCH so concurrent requests against the same session
// retry instead of losing updates.
type RedisCartStore struct {
	client *redis.Client
}

// NewRedisCartStore creates a RedisCartStore on the given client.
func NewRedisCartStore(client *redis.Client) *RedisCartStore {
	return &RedisCartStore{client: client}
}

func cartKey(sessionID uuid.UUID) string {
	return cartKeyPrefix + sessionID.String()
}

// Get returns the session's cart, or an empty cart when none exists.
func (s *RedisCartStore) Get(ctx context.Context, sessionID uuid.UUID) (cart.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.Cart{}, nil
	}
	if err != nil {
		return cart.Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return cart.Cart{}, fmt.Errorf("failed to decode cart: %w", err)
	}
	return c, nil
}

// AddItem appends an item and returns the updated cart.
func (s *RedisCartStore) AddItem(ctx context.Context, sessionID uuid.UUID, item cart.Item) (cart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) {
		c.AddItem(item)
	})
}

// RemoveItem removes the first matching entry and returns the updated cart.
func (s *RedisCartStore) RemoveItem(ctx context.Context, sessionID, tourPackageID uuid.UUID) (cart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) {
		c.RemoveItem(tourPackageID)
	})
}

// Clear empties the session's cart.
func (s *RedisCartStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// mutate applies fn to the session's cart under WATCH, retrying on
// concurrent modification.
func (s *RedisCartStore) mutate(ctx context.Context, sessionID uuid.UUID, fn func(*cart.Cart)) (cart.Cart, error) {
	key := cartKey(sessionID)
	var result cart.Cart

	txf := func(tx *redis.Tx) error {
		var c cart.Cart
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			if err := json.Unmarshal(data, &c); err != nil {
				return fmt.Errorf("failed to decode cart: %w", err)
			}
		}

		fn(&c)

		buf, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to encode cart: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, buf, cartTTL)
			return nil
		})
		if err != nil {
			return err
		}
		result = c
		return nil
	}

	for i := 0; i < cartWatchRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return cart.Cart{}, err
	}
	return cart.Cart{}, domain.NewConflictError("cart is being modified concurrently")
}
