// Package event publishes order lifecycle events for downstream consumers
// (fulfilment, notifications). Publishing is optional; when disabled the
// nop publisher is wired instead.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Routing keys for order events.
const (
	RouteOrderCreated = "order.created"
	RouteOrderPaid    = "order.paid"
)

// OrderEvent is the JSON payload published for order lifecycle changes.
type OrderEvent struct {
	OrderID    uuid.UUID `json:"order_id"`
	UserID     uuid.UUID `json:"user_id"`
	TotalPrice int64     `json:"total_price"`
	ItemCount  int       `json:"item_count"`
	Occurred   time.Time `json:"occurred"`
}

// Publisher emits order lifecycle events.
type Publisher interface {
	// OrderCreated announces a freshly created (unpaid) order.
	OrderCreated(ctx context.Context, evt OrderEvent) error

	// OrderPaid announces that an order has been paid.
	OrderPaid(ctx context.Context, evt OrderEvent) error

	// Close releases the underlying connection.
	Close() error
}

// nopPublisher drops all events.
type nopPublisher struct{}

// NewNopPublisher creates a publisher that discards every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) OrderCreated(context.Context, OrderEvent) error { return nil }
func (nopPublisher) OrderPaid(context.Context, OrderEvent) error    { return nil }
func (nopPublisher) Close() error                                   { return nil }
