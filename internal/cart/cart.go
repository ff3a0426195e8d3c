// Package cart implements the session-backed shopping cart. A cart is a
// mapping from product id to quantity and the unit price captured when the
// product was first added; it lives entirely in the session store and has
// no identity of its own.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionKey is the fixed session key under which the cart is stored.
const SessionKey = "cart"

// Engine maintains the per-session cart. All operations are defensive:
// absent carts read as empty, removing an absent product is a no-op.
type Engine struct {
	store    session.Store
	products repository.ProductRepository
	logger   zerolog.Logger
}

// NewEngine creates a cart engine on top of the given session store and
// product catalogue.
func NewEngine(store session.Store, products repository.ProductRepository, logger zerolog.Logger) *Engine {
	return &Engine{
		store:    store,
		products: products,
		logger:   logger.With().Str("component", "cart").Logger(),
	}
}

// Add puts quantity units of the product into the cart. The caller has
// already validated the quantity. Repeated adds accumulate; the unit price
// is captured on the first add and kept even if the catalogue price later
// changes.
func (e *Engine) Add(ctx context.Context, sessionID string, product *model.Product, quantity int) error {
	data, err := e.load(ctx, sessionID)
	if err != nil {
		return err
	}

	id := product.ID.String()
	line, ok := data[id]
	if !ok {
		line = model.CartLine{
			Quantity: 0,
			Price:    strconv.FormatInt(product.Price, 10),
		}
	}
	line.Quantity += quantity
	data[id] = line

	e.logger.Debug().
		Str("product_id", id).
		Int("quantity", line.Quantity).
		Msg("product added to cart")

	return e.save(ctx, sessionID, data)
}

// Remove deletes the product's entry from the cart. Removing a product
// that is not in the cart is a no-op.
func (e *Engine) Remove(ctx context.Context, sessionID string, productID uuid.UUID) error {
	data, err := e.load(ctx, sessionID)
	if err != nil {
		return err
	}

	id := productID.String()
	if _, ok := data[id]; !ok {
		return nil
	}
	delete(data, id)

	return e.save(ctx, sessionID, data)
}

// Clear discards the whole cart.
func (e *Engine) Clear(ctx context.Context, sessionID string) error {
	if err := e.store.Delete(ctx, sessionID, SessionKey); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Items joins the cart lines with the live catalogue and returns them for
// display, freshly derived on every call. Lines whose product has been
// deleted from the catalogue are silently dropped. Prices stay as captured
// in the session.
func (e *Engine) Items(ctx context.Context, sessionID string) ([]model.CartItem, error) {
	data, err := e.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []model.CartItem{}, nil
	}

	ids := make([]uuid.UUID, 0, len(data))
	for key := range data {
		id, err := uuid.Parse(key)
		if err != nil {
			// A foreign key in the session cannot match any product.
			continue
		}
		ids = append(ids, id)
	}

	products, err := e.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart products: %w", err)
	}

	items := make([]model.CartItem, 0, len(products))
	for _, product := range products {
		line := data[product.ID.String()]
		price := line.UnitPrice()
		items = append(items, model.CartItem{
			Product:    product,
			Quantity:   line.Quantity,
			Price:      price,
			TotalPrice: price * int64(line.Quantity),
		})
	}

	return items, nil
}

// TotalPrice sums price times quantity over all cart lines. It does not
// touch the catalogue, so the total is stable even if referenced products
// have been deleted.
func (e *Engine) TotalPrice(ctx context.Context, sessionID string) (int64, error) {
	data, err := e.load(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, line := range data {
		total += line.UnitPrice() * int64(line.Quantity)
	}
	return total, nil
}

func (e *Engine) load(ctx context.Context, sessionID string) (model.CartData, error) {
	raw, ok, err := e.store.Get(ctx, sessionID, SessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if !ok {
		return model.CartData{}, nil
	}

	var data model.CartData
	if err := json.Unmarshal(raw, &data); err != nil {
		// A corrupt session value should not take the shop down; start over.
		e.logger.Warn().Err(err).Msg("discarding unreadable cart session value")
		return model.CartData{}, nil
	}
	if data == nil {
		data = model.CartData{}
	}
	return data, nil
}

func (e *Engine) save(ctx context.Context, sessionID string, data model.CartData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := e.store.Put(ctx, sessionID, SessionKey, raw); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
