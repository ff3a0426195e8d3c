// Package session provides the key-value store that backs per-visitor
// state, most notably the shopping cart. Values are opaque JSON blobs
// keyed by session id and a fixed per-feature key.
package session

import "context"

// Store is a session-scoped key-value store. Writes are last-write-wins;
// there is no cross-request locking.
type Store interface {
	// Get returns the value stored under (sessionID, key). The boolean is
	// false when nothing is stored.
	Get(ctx context.Context, sessionID, key string) ([]byte, bool, error)

	// Put stores a value under (sessionID, key), replacing any previous one.
	Put(ctx context.Context, sessionID, key string, value []byte) error

	// Delete removes the value under (sessionID, key). Deleting an absent
	// key is not an error.
	Delete(ctx context.Context, sessionID, key string) error
}
