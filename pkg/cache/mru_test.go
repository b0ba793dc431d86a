package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMRU_EvictsMostRecentlyUsed(t *testing.T) {
	c, err := New[int, string](MRU, 2)
	require.NoError(t, err)

	c.Set(1, "A")
	c.Set(2, "B")

	// Reading 1 makes it the most recently used entry, so it becomes the
	// victim on the next insertion.
	v, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "A", v)

	c.Set(3, "C")

	_, ok = c.Get(1)
	assert.False(t, ok, "1 should have been evicted as most recently used")

	v, ok = c.Get(2)
	require.True(t, ok)
	assert.Equal(t, "B", v)

	v, ok = c.Get(3)
	require.True(t, ok)
	assert.Equal(t, "C", v)
}

func TestMRU_SetRefreshesRecency(t *testing.T) {
	c, err := New[int, string](MRU, 2)
	require.NoError(t, err)

	c.Set(1, "A")
	c.Set(2, "B")
	// Overwriting 1 makes it the most recent access.
	c.Set(1, "A2")
	c.Set(3, "C")

	_, ok := c.Get(1)
	assert.False(t, ok)

	v, ok := c.Get(2)
	require.True(t, ok)
	assert.Equal(t, "B", v)
}

func TestMRU_KeysInEvictionOrder(t *testing.T) {
	c, err := New[int, string](MRU, 3)
	require.NoError(t, err)

	c.Set(1, "A")
	c.Set(2, "B")
	c.Set(3, "C")
	c.Get(1)

	// 1 is the warmest entry and therefore the next victim.
	assert.Equal(t, []int{1, 3, 2}, c.Keys())
}
