package service

import (
	"context"
	"fmt"

	"storefront/internal/cart"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Quantity bounds enforced on every add.
const (
	minCartQuantity = 1
	maxCartQuantity = 9
)

// cartService implements CartService on top of the cart engine.
type cartService struct {
	engine      *cart.Engine
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(engine *cart.Engine, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		engine:      engine,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// AddToCart validates the quantity and the product, then delegates to the
// engine. The engine captures the current price on the first add.
func (s *cartService) AddToCart(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) error {
	if quantity < minCartQuantity || quantity > maxCartQuantity {
		return model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to retrieve product")
		return fmt.Errorf("failed to retrieve product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	return s.engine.Add(ctx, sessionID, product, quantity)
}

// RemoveFromCart removes a product from the cart. Removing a product that is
// not in the cart is a no-op.
func (s *cartService) RemoveFromCart(ctx context.Context, sessionID string, productID uuid.UUID) error {
	return s.engine.Remove(ctx, sessionID, productID)
}

// ClearCart discards the session cart.
func (s *cartService) ClearCart(ctx context.Context, sessionID string) error {
	return s.engine.Clear(ctx, sessionID)
}

// GetCart returns the cart joined with the live catalogue plus the grand
// total. The total covers every line, including lines whose product has been
// removed from the catalogue since it was added.
func (s *cartService) GetCart(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	items, err := s.engine.Items(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	total, err := s.engine.TotalPrice(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &model.CartResponse{
		Items:      items,
		TotalPrice: total,
	}, nil
}
