// Package image stores product image assets. The catalogue only keeps the
// returned key; the bytes live in S3 or on the local filesystem depending
// on configuration.
package image

import (
	"context"
	"io"
)

// Store reads and writes image assets by key.
type Store interface {
	// Save stores the image bytes and returns the key to keep on the
	// product. The original filename is only used for its extension.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)

	// Open returns a reader over the stored image.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a stored image. Deleting an absent key is tolerated.
	Delete(ctx context.Context, key string) error
}
