package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CartHandler handles session cart HTTP requests.
type CartHandler struct {
	cart   service.CartService
	logger zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cart service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		cart:   cart,
		logger: logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.cart.GetCart(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req model.AddToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		writeError(w, model.ErrProductNotFound, h.logger)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	if err := h.cart.AddToCart(r.Context(), sessionID, productID, req.Quantity); err != nil {
		writeError(w, err, h.logger)
		return
	}

	resp, err := h.cart.GetCart(r.Context(), sessionID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Remove handles DELETE /api/cart/{productId}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("productId"))
	if err != nil {
		writeError(w, model.ErrProductNotFound, h.logger)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	if err := h.cart.RemoveFromCart(r.Context(), sessionID, productID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.ClearCart(r.Context(), middleware.SessionID(r.Context())); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
