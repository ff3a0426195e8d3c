package model

import "strconv"

// CartLine is one entry of the session cart. The unit price is kept as a
// string-encoded integer, captured when the product was first added; it is
// not refreshed if the catalogue price later changes.
type CartLine struct {
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// UnitPrice parses the captured price. A line written by the cart engine
// always parses; anything else counts as zero.
func (l CartLine) UnitPrice() int64 {
	p, err := strconv.ParseInt(l.Price, 10, 64)
	if err != nil {
		return 0
	}
	return p
}

// CartData is the session representation of a cart, keyed by product id.
type CartData map[string]CartLine

// CartItem is a cart line joined with its live product for display.
type CartItem struct {
	Product    Product `json:"product"`
	Quantity   int     `json:"quantity"`
	Price      int64   `json:"price"`
	TotalPrice int64   `json:"totalPrice"`
}

// CartResponse represents the cart page payload.
type CartResponse struct {
	Items      []CartItem `json:"items"`
	TotalPrice int64      `json:"totalPrice"`
}

// AddToCartRequest represents the payload for adding a product to the cart.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
