// Package persist adds durable storage behind a capacity-bounded cache.
// Reads are served from memory only; writes land in the cache immediately and
// reach the store asynchronously.
package persist

import "context"

// Store defines the storage operations required by the cached wrapper.
// Implementations must be safe for concurrent use.
type Store[K comparable, V any] interface {
	// LoadAll loads every entry from storage.
	LoadAll(ctx context.Context) (map[K]V, error)

	// Persist saves a single entry to storage.
	Persist(ctx context.Context, key K, value V) error

	// Delete removes a single entry from storage.
	Delete(ctx context.Context, key K) error
}
