package image

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// fsStore keeps images in a local directory. Used in development and as
// the fallback when S3 is unavailable.
type fsStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFSStore creates a filesystem-backed image store rooted at dir,
// creating the directory when needed.
func NewFSStore(dir string, logger zerolog.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", dir, err)
	}

	return &fsStore{
		dir:    dir,
		logger: logger.With().Str("component", "fs-image-store").Logger(),
	}, nil
}

// Save stores the image bytes and returns the key to keep on the product.
func (s *fsStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	key := uuid.New().String() + path.Ext(filename)

	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	s.logger.Debug().Str("key", key).Msg("image stored")

	return key, nil
}

// Open returns a reader over the stored image.
func (s *fsStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	// Keys are generated by Save; reject anything trying to escape the dir.
	if filepath.Base(key) != key {
		return nil, fmt.Errorf("invalid image key: %s", key)
	}

	f, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", key, err)
	}
	return f, nil
}

// Delete removes a stored image.
func (s *fsStore) Delete(_ context.Context, key string) error {
	if filepath.Base(key) != key {
		return fmt.Errorf("invalid image key: %s", key)
	}

	if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image %s: %w", key, err)
	}
	return nil
}
