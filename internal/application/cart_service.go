package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tourvista/service-tours/internal/domain/cart"
	"github.com/tourvista/service-tours/internal/domain/tour"
)

// CartDTO is the response representation of a session cart.
type CartDTO struct {
	Items           []cart.Item `json:"items"`
	TotalPriceCents int64       `json:"total_price_cents"`
}

// CartService is the application service for session cart use cases.
type CartService struct {
	store  cart.Store
	tours  tour.Repository
	logger *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(store cart.Store, tours tour.Repository, logger *zap.Logger) *CartService {
	return &CartService{
		store:  store,
		tours:  tours,
		logger: logger,
	}
}

// Get returns the session's cart.
func (s *CartService) Get(ctx context.Context, sessionID uuid.UUID) (*CartDTO, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	result := toCartDTO(c)
	return &result, nil
}

// AddItem resolves the tour package from the catalog and appends a snapshot
// of it to the session's cart. Adding the same package twice yields two
// entries.
func (s *CartService) AddItem(ctx context.Context, sessionID, tourPackageID uuid.UUID) (*CartDTO, error) {
	pkg, err := s.tours.FindByID(ctx, tourPackageID)
	if err != nil {
		return nil, err
	}

	c, err := s.store.AddItem(ctx, sessionID, cart.Item{
		TourPackageID: pkg.ID(),
		Name:          pkg.Name(),
		PriceCents:    pkg.PriceCents(),
	})
	if err != nil {
		return nil, err
	}

	result := toCartDTO(c)
	return &result, nil
}

// RemoveItem removes the first matching entry from the session's cart.
// Removing a package that is not in the cart leaves it unchanged.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, tourPackageID uuid.UUID) (*CartDTO, error) {
	c, err := s.store.RemoveItem(ctx, sessionID, tourPackageID)
	if err != nil {
		return nil, err
	}
	result := toCartDTO(c)
	return &result, nil
}

// Clear empties the session's cart.
func (s *CartService) Clear(ctx context.Context, sessionID uuid.UUID) error {
	return s.store.Clear(ctx, sessionID)
}

func toCartDTO(c cart.Cart) CartDTO {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return CartDTO{
		Items:           items,
		TotalPriceCents: c.TotalPriceCents,
	}
}
