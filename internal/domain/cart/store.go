package cart

import (
	"context"

	"github.com/google/uuid"
)

// Store keeps one cart per session and serializes concurrent mutation of
// the same session, so parallel requests cannot lose total-price updates.
// Sessions are keyed by the authenticated user's ID.
type Store interface {
	// Get returns the session's cart, or an empty cart when none exists.
	Get(ctx context.Context, sessionID uuid.UUID) (Cart, error)

	// AddItem appends an item to the session's cart and returns the
	// updated cart.
	AddItem(ctx context.Context, sessionID uuid.UUID, item Item) (Cart, error)

	// RemoveItem removes the first entry matching the package ID and
	// returns the updated cart. No-op when the package is not in the cart.
	RemoveItem(ctx context.Context, sessionID, tourPackageID uuid.UUID) (Cart, error)

	// Clear empties the session's cart.
	Clear(ctx context.Context, sessionID uuid.UUID) error
}
