package model

import (
	"time"

	"github.com/google/uuid"
)

// Order represents a customer order. Paid is false until the payment step
// completes. The total is always derived from the items, never stored.
type Order struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Paid      bool      `json:"paid" db:"paid"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in an order. Price is the unit price
// snapshotted at order-creation time, independent of later catalogue edits.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Price     int64     `json:"price" db:"price"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// Cost returns the line cost: unit price times quantity.
func (i *OrderItem) Cost() int64 {
	return i.Price * int64(i.Quantity)
}

// OrderResponse represents the response payload for an order, with its items
// and the still-existing products they reference.
type OrderResponse struct {
	ID         uuid.UUID   `json:"id"`
	Paid       bool        `json:"paid"`
	CreatedAt  time.Time   `json:"createdAt"`
	TotalPrice int64       `json:"totalPrice"`
	Items      []OrderItem `json:"items"`
	Products   []Product   `json:"products"`
}

// OrderDetail is the manager view of an order: the order itself plus the
// customer and their default shipping addresses.
type OrderDetail struct {
	Order     OrderResponse     `json:"order"`
	Customer  User              `json:"customer"`
	Addresses []ShippingAddress `json:"addresses"`
}
