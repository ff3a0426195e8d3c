package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents an item in the catalogue. Price is a non-negative
// amount in the smallest currency unit.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CategoryID  uuid.UUID `json:"categoryId" db:"category_id"`
	Image       string    `json:"image" db:"image"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Price       int64     `json:"price" db:"price"`
	Slug        string    `json:"slug" db:"slug"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ProductRequest represents the payload for creating or updating a product.
// The image key is assigned separately by the upload handler.
type ProductRequest struct {
	CategoryID  string `json:"categoryId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Image       string `json:"image,omitempty"`
}
