package persist

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polycache/polycache/pkg/cache"
)

func newTestCached(t *testing.T, policy cache.Policy, capacity int, store Store[string, string]) *Cached[string, string] {
	t.Helper()
	c, err := NewCached(policy, capacity, store, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestCached_InvalidCapacity(t *testing.T) {
	_, err := NewCached[string, string](cache.LRU, 0, NewMockStore[string, string](), zerolog.Nop())
	assert.ErrorIs(t, err, cache.ErrInvalidCapacity)
}

func TestCached_Load(t *testing.T) {
	mock := NewMockStore[string, string]()
	mock.LoadAllFunc = func(ctx context.Context) (map[string]string, error) {
		return map[string]string{"one": "1", "two": "2"}, nil
	}

	c := newTestCached(t, cache.LRU, 4, mock)
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, 1, mock.LoadAllCallCount())

	v, ok := c.Get("one")
	require.True(t, ok)
	assert.Equal(t, "1", v)
	v, ok = c.Get("two")
	require.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestCached_LoadError(t *testing.T) {
	expectedErr := errors.New("database connection failed")

	mock := NewMockStore[string, string]()
	mock.LoadAllFunc = func(ctx context.Context) (map[string]string, error) {
		return nil, expectedErr
	}

	c := newTestCached(t, cache.LRU, 4, mock)
	err := c.Load(context.Background())
	assert.ErrorIs(t, err, expectedErr)
}

func TestCached_LoadBeyondCapacityEvicts(t *testing.T) {
	mock := NewMockStore[string, string]()
	mock.LoadAllFunc = func(ctx context.Context) (map[string]string, error) {
		return map[string]string{"a": "1", "b": "2", "c": "3", "d": "4"}, nil
	}

	c := newTestCached(t, cache.LRU, 2, mock)
	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.Flush())

	assert.Equal(t, 2, c.Len(), "replaying more rows than capacity keeps the bound")
	assert.Equal(t, uint64(2), c.Evictions())
	assert.Len(t, mock.DeleteCalls(), 2, "surplus rows are deleted from the store")
}

func TestCached_SetPersistsAsynchronously(t *testing.T) {
	mock := NewMockStore[string, string]()
	c := newTestCached(t, cache.LRU, 4, mock)

	c.Set("test", "42")

	// Value is visible immediately.
	v, ok := c.Get("test")
	require.True(t, ok)
	assert.Equal(t, "42", v)

	require.NoError(t, c.Flush())

	calls := mock.PersistCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "test", calls[0].Key)
	assert.Equal(t, "42", calls[0].Value)
}

func TestCached_RemoveDeletesFromStore(t *testing.T) {
	mock := NewMockStore[string, string]()
	c := newTestCached(t, cache.LRU, 4, mock)

	c.Set("test", "42")
	c.Remove("test")
	require.NoError(t, c.Flush())

	_, ok := c.Get("test")
	assert.False(t, ok)
	assert.Equal(t, []string{"test"}, mock.DeleteCalls())
}

func TestCached_EvictionDeletesFromStore(t *testing.T) {
	mock := NewMockStore[string, string]()
	c := newTestCached(t, cache.FIFO, 2, mock)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3") // evicts "a"
	require.NoError(t, c.Flush())

	assert.Equal(t, uint64(1), c.Evictions())
	assert.Equal(t, []string{"a"}, mock.DeleteCalls())

	keys := c.Keys()
	assert.Equal(t, []string{"b", "c"}, keys)
}

func TestCached_PersistErrorDoesNotAffectCache(t *testing.T) {
	mock := NewMockStore[string, string]()
	mock.PersistFunc = func(ctx context.Context, key, value string) error {
		return errors.New("disk full")
	}

	c := newTestCached(t, cache.LRU, 4, mock)
	c.Set("test", "42")
	require.NoError(t, c.Flush())

	// Cache keeps serving the value even though persistence failed.
	v, ok := c.Get("test")
	require.True(t, ok)
	assert.Equal(t, "42", v)
}
