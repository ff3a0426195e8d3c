package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles customer order HTTP requests.
type OrderHandler struct {
	orders service.OrderService
	logger zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders, turning the session cart into an order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserClaims(r.Context())
	sessionID := middleware.SessionID(r.Context())

	order, err := h.orders.CreateOrder(r.Context(), claims.UserID, sessionID)
	if err != nil {
		middleware.RecordOrderOperation("create", false)
		writeError(w, err, h.logger)
		return
	}

	middleware.RecordOrderOperation("create", true)
	writeJSON(w, http.StatusCreated, order)
}

// DirectCheckout handles POST /api/products/{id}/checkout.
func (h *OrderHandler) DirectCheckout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserClaims(r.Context())

	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrProductNotFound, h.logger)
		return
	}

	order, err := h.orders.DirectCheckout(r.Context(), claims.UserID, productID)
	if err != nil {
		middleware.RecordOrderOperation("direct_checkout", false)
		writeError(w, err, h.logger)
		return
	}

	middleware.RecordOrderOperation("direct_checkout", true)
	writeJSON(w, http.StatusCreated, order)
}

// Pay handles POST /api/orders/{id}/payment.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserClaims(r.Context())
	sessionID := middleware.SessionID(r.Context())

	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrOrderNotFound, h.logger)
		return
	}

	if err := h.orders.FakePayment(r.Context(), claims.UserID, orderID, sessionID); err != nil {
		middleware.RecordOrderOperation("payment", false)
		writeError(w, err, h.logger)
		return
	}

	middleware.RecordOrderOperation("payment", true)
	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserClaims(r.Context())

	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrOrderNotFound, h.logger)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), claims.UserID, orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// List handles GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserClaims(r.Context())

	orders, err := h.orders.UserOrders(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}
