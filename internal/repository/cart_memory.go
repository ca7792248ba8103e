package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tourvista/service-tours/internal/domain/cart"
)

// MemoryCartStore keeps carts in process memory, one per session, with a
// per-session lock so parallel requests against the same session serialize
// instead of losing total-price updates.
type MemoryCartStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionCart
}

type sessionCart struct {
	mu   sync.Mutex
	cart cart.Cart
}

// NewMemoryCartStore creates an empty MemoryCartStore.
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{sessions: make(map[uuid.UUID]*sessionCart)}
}

func (s *MemoryCartStore) session(id uuid.UUID) *sessionCart {
	s.mu.RLock()
	sc, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return sc
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sc, ok = s.sessions[id]; !ok {
		sc = &sessionCart{}
		s.sessions[id] = sc
	}
	return sc
}

// Get returns the session's cart, or an empty cart when none exists.
func (s *MemoryCartStore) Get(_ context.Context, sessionID uuid.UUID) (cart.Cart, error) {
	sc := s.session(sessionID)
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return snapshot(sc.cart), nil
}

// AddItem appends an item and returns the updated cart.
func (s *MemoryCartStore) AddItem(_ context.Context, sessionID uuid.UUID, item cart.Item) (cart.Cart, error) {
	sc := s.session(sessionID)
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cart.AddItem(item)
	return snapshot(sc.cart), nil
}

// RemoveItem removes the first matching entry and returns the updated cart.
func (s *MemoryCartStore) RemoveItem(_ context.Context, sessionID, tourPackageID uuid.UUID) (cart.Cart, error) {
	sc := s.session(sessionID)
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cart.RemoveItem(tourPackageID)
	return snapshot(sc.cart), nil
}

// Clear empties the session's cart.
func (s *MemoryCartStore) Clear(_ context.Context, sessionID uuid.UUID) error {
	sc := s.session(sessionID)
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cart.Clear()
	return nil
}

// snapshot copies the cart so callers never share the store's item slice.
func snapshot(c cart.Cart) cart.Cart {
	items := make([]cart.Item, len(c.Items))
	copy(items, c.Items)
	return cart.Cart{Items: items, TotalPriceCents: c.TotalPriceCents}
}
