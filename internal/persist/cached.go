package persist

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/polycache/polycache/pkg/cache"
)

// Cached combines a policy-bounded cache with a Store. All reads come from
// memory. Set and Remove update the cache synchronously and persist
// asynchronously; keys evicted by the policy are deleted from the store the
// same way, so a later Load never resurrects more entries than fit.
//
// Async writes are not ordered per key: a Set racing an earlier eviction's
// store delete may land in either order, so the store can briefly diverge
// from memory until the next write to that key. Flush waits for completion,
// not order. The cache remains authoritative while the process runs.
type Cached[K comparable, V any] struct {
	inner     cache.Cache[K, V]
	store     Store[K, V]
	logger    zerolog.Logger
	evictions atomic.Uint64

	// Track pending async operations for graceful shutdown
	pendingWrites sync.WaitGroup
}

// NewCached builds a policy cache backed by the given store.
func NewCached[K comparable, V any](policy cache.Policy, capacity int, store Store[K, V], logger zerolog.Logger) (*Cached[K, V], error) {
	c := &Cached[K, V]{
		store:  store,
		logger: logger,
	}

	inner, err := cache.New(policy, capacity, cache.WithEvictionCallback[K, V](func(key K, _ V) {
		c.evictions.Add(1)
		c.asyncDelete(key)
	}))
	if err != nil {
		return nil, err
	}

	c.inner = inner
	return c, nil
}

// Load bulk-loads all stored entries into the cache. Should be called once at
// startup. If the store holds more entries than the cache capacity, the
// policy evicts the surplus as it is replayed.
func (c *Cached[K, V]) Load(ctx context.Context) error {
	data, err := c.store.LoadAll(ctx)
	if err != nil {
		return err
	}

	for k, v := range data {
		c.inner.Set(k, v)
	}

	return nil
}

// Get retrieves a value from the cache. Never queries the store.
func (c *Cached[K, V]) Get(key K) (V, bool) {
	return c.inner.Get(key)
}

// Set updates the cache immediately and persists to the store asynchronously.
func (c *Cached[K, V]) Set(key K, value V) {
	c.inner.Set(key, value)

	c.pendingWrites.Add(1)
	go func() {
		defer c.pendingWrites.Done()

		if err := c.store.Persist(context.Background(), key, value); err != nil {
			c.logger.Warn().Err(err).Interface("key", key).Msg("async persist failed")
		}
	}()
}

// Remove deletes from the cache immediately and from the store asynchronously.
func (c *Cached[K, V]) Remove(key K) {
	c.inner.Remove(key)
	c.asyncDelete(key)
}

func (c *Cached[K, V]) asyncDelete(key K) {
	c.pendingWrites.Add(1)
	go func() {
		defer c.pendingWrites.Done()

		if err := c.store.Delete(context.Background(), key); err != nil {
			c.logger.Warn().Err(err).Interface("key", key).Msg("async delete failed")
		}
	}()
}

// Len returns the number of entries currently cached.
func (c *Cached[K, V]) Len() int { return c.inner.Len() }

// Cap returns the cache capacity.
func (c *Cached[K, V]) Cap() int { return c.inner.Cap() }

// Keys returns cached keys in eviction order, next victim first.
func (c *Cached[K, V]) Keys() []K { return c.inner.Keys() }

// Evictions returns the number of entries discarded by the policy so far.
func (c *Cached[K, V]) Evictions() uint64 { return c.evictions.Load() }

// Flush blocks until all pending async writes complete.
// Should be called during graceful shutdown to ensure no data loss.
func (c *Cached[K, V]) Flush() error {
	c.pendingWrites.Wait()
	return nil
}
