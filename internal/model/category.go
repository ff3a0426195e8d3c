package model

import "github.com/google/uuid"

// Category represents a product category. The hierarchy is one level deep:
// a category either is top-level (ParentID nil) or belongs to exactly one
// top-level parent.
type Category struct {
	ID       uuid.UUID  `json:"id" db:"id"`
	Title    string     `json:"title" db:"title"`
	Slug     string     `json:"slug" db:"slug"`
	ParentID *uuid.UUID `json:"parentId,omitempty" db:"parent_id"`
}

// IsSub reports whether the category is a sub-category of another one.
func (c *Category) IsSub() bool {
	return c.ParentID != nil
}

// CategoryRequest represents the payload for creating or updating a category.
type CategoryRequest struct {
	Title    string  `json:"title"`
	ParentID *string `json:"parentId,omitempty"`
}
