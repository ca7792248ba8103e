package cart

import "github.com/google/uuid"

// Item is a tour package selection held in a cart.
type Item struct {
	TourPackageID uuid.UUID `json:"tour_package_id"`
	Name          string    `json:"name"`
	PriceCents    int64     `json:"price_cents"`
}

// Cart is the transient, session-scoped working set of catalog selections.
// It is a plain value: stores serialize it whole and serialize mutation per
// session, so methods need no locking of their own.
//
// Invariant: TotalPriceCents equals the sum of the held item prices after
// every mutation.
type Cart struct {
	Items           []Item `json:"items"`
	TotalPriceCents int64  `json:"total_price_cents"`
}

// AddItem appends an item and grows the total by its price. Adding the same
// package twice yields two entries and counts the price twice.
func (c *Cart) AddItem(item Item) {
	c.Items = append(c.Items, item)
	c.TotalPriceCents += item.PriceCents
}

// RemoveItem removes the first entry matching the package ID and shrinks
// the total by that entry's price. Silently no-ops when absent.
func (c *Cart) RemoveItem(tourPackageID uuid.UUID) {
	for i, item := range c.Items {
		if item.TourPackageID == tourPackageID {
			c.TotalPriceCents -= item.PriceCents
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart and resets the total to zero.
func (c *Cart) Clear() {
	c.Items = nil
	c.TotalPriceCents = 0
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
