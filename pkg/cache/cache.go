// Package cache provides fixed-capacity, in-memory key-value caches with a
// choice of eviction policy (FIFO, LIFO, LRU, MRU, LFU).
//
// All implementations share the same contract: Get never changes which keys
// are present, Set on an existing key overwrites without evicting, and Set on
// a new key at capacity evicts exactly one victim chosen by the policy. Every
// cache is safe for concurrent use; each operation (lookup, order update,
// eviction, insertion) runs as a single critical section.
package cache

import (
	"errors"
	"fmt"
	"strings"
)

// Policy selects the eviction strategy of a cache at construction time.
type Policy string

const (
	// FIFO evicts the key that was inserted earliest.
	FIFO Policy = "fifo"
	// LIFO evicts the key that was inserted most recently.
	LIFO Policy = "lifo"
	// LRU evicts the key whose last access is oldest.
	LRU Policy = "lru"
	// MRU evicts the key whose last access is newest.
	MRU Policy = "mru"
	// LFU evicts the key with the lowest access count, breaking ties by
	// least recent use within the minimum frequency.
	LFU Policy = "lfu"
)

var (
	// ErrInvalidCapacity is returned when a cache is constructed with a
	// capacity that is zero or negative.
	ErrInvalidCapacity = errors.New("cache: capacity must be positive")

	// ErrUnknownPolicy is returned when a policy name does not match any
	// supported eviction policy.
	ErrUnknownPolicy = errors.New("cache: unknown eviction policy")
)

// Policies lists all supported eviction policies.
func Policies() []Policy {
	return []Policy{FIFO, LIFO, LRU, MRU, LFU}
}

// ParsePolicy converts a case-insensitive policy name into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case FIFO:
		return FIFO, nil
	case LIFO:
		return LIFO, nil
	case LRU:
		return LRU, nil
	case MRU:
		return MRU, nil
	case LFU:
		return LFU, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// String implements fmt.Stringer.
func (p Policy) String() string { return string(p) }

// Cache is a capacity-bounded key-value store. Implementations differ only in
// how they choose an eviction victim when a new key is inserted at capacity.
type Cache[K comparable, V any] interface {
	// Get retrieves a value by key. Recency-aware policies (LRU, MRU) mark
	// the key as most recently used; LFU increments its access count;
	// FIFO and LIFO leave order state untouched. Returns the zero value
	// and false if the key is absent.
	Get(key K) (V, bool)

	// Set inserts or overwrites a key. Overwriting applies the same order
	// update as a successful Get and never evicts. Inserting a new key at
	// capacity evicts exactly one entry first.
	Set(key K, value V)

	// Remove deletes a key. A no-op if the key is absent.
	Remove(key K)

	// Len returns the number of entries currently cached.
	Len() int

	// Cap returns the fixed capacity set at construction.
	Cap() int

	// Keys returns all cached keys in eviction order, next victim first.
	Keys() []K

	// Clear removes all entries and resets order state.
	Clear()
}

// EvictionCallback is invoked with the key and value of each evicted entry.
// It runs inside the cache's critical section, so it must not call back into
// the cache.
type EvictionCallback[K comparable, V any] func(key K, value V)

// Option configures a cache during construction.
type Option[K comparable, V any] func(*options[K, V])

type options[K comparable, V any] struct {
	onEvict EvictionCallback[K, V]
}

// WithEvictionCallback registers a callback fired for every evicted entry.
// Entries removed via Remove or Clear do not trigger the callback.
func WithEvictionCallback[K comparable, V any](cb EvictionCallback[K, V]) Option[K, V] {
	return func(o *options[K, V]) {
		o.onEvict = cb
	}
}

// New constructs a cache with the given eviction policy and capacity.
// Capacity must be positive.
func New[K comparable, V any](policy Policy, capacity int, opts ...Option[K, V]) (Cache[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidCapacity, capacity)
	}

	var o options[K, V]
	for _, opt := range opts {
		opt(&o)
	}

	switch policy {
	case FIFO:
		return newFIFO[K, V](capacity, o.onEvict), nil
	case LIFO:
		return newLIFO[K, V](capacity, o.onEvict), nil
	case LRU:
		return newLRU[K, V](capacity, o.onEvict), nil
	case MRU:
		return newMRU[K, V](capacity, o.onEvict), nil
	case LFU:
		return newLFU[K, V](capacity, o.onEvict), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}
