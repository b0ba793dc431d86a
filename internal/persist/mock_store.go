package persist

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of Store for testing. It is generic and
// thread-safe, suitable for testing Cached.
type MockStore[K comparable, V any] struct {
	mu sync.Mutex

	// Behavior configuration
	LoadAllFunc func(ctx context.Context) (map[K]V, error)
	PersistFunc func(ctx context.Context, key K, value V) error
	DeleteFunc  func(ctx context.Context, key K) error

	// Call tracking
	loadAllCalls int
	persistCalls []struct {
		Key   K
		Value V
	}
	deleteCalls []K
}

// NewMockStore creates a new mock with default no-op implementations.
func NewMockStore[K comparable, V any]() *MockStore[K, V] {
	return &MockStore[K, V]{
		LoadAllFunc: func(ctx context.Context) (map[K]V, error) {
			return make(map[K]V), nil
		},
		PersistFunc: func(ctx context.Context, key K, value V) error {
			return nil
		},
		DeleteFunc: func(ctx context.Context, key K) error {
			return nil
		},
	}
}

// LoadAll implements Store.LoadAll
func (m *MockStore[K, V]) LoadAll(ctx context.Context) (map[K]V, error) {
	m.mu.Lock()
	m.loadAllCalls++
	m.mu.Unlock()

	return m.LoadAllFunc(ctx)
}

// Persist implements Store.Persist
func (m *MockStore[K, V]) Persist(ctx context.Context, key K, value V) error {
	m.mu.Lock()
	m.persistCalls = append(m.persistCalls, struct {
		Key   K
		Value V
	}{key, value})
	m.mu.Unlock()

	return m.PersistFunc(ctx, key, value)
}

// Delete implements Store.Delete
func (m *MockStore[K, V]) Delete(ctx context.Context, key K) error {
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, key)
	m.mu.Unlock()

	return m.DeleteFunc(ctx, key)
}

// LoadAllCallCount returns how many times LoadAll was called.
func (m *MockStore[K, V]) LoadAllCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadAllCalls
}

// PersistCalls returns a copy of the recorded Persist calls.
func (m *MockStore[K, V]) PersistCalls() []struct {
	Key   K
	Value V
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]struct {
		Key   K
		Value V
	}, len(m.persistCalls))
	copy(calls, m.persistCalls)
	return calls
}

// DeleteCalls returns a copy of the recorded Delete calls.
func (m *MockStore[K, V]) DeleteCalls() []K {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]K, len(m.deleteCalls))
	copy(calls, m.deleteCalls)
	return calls
}
