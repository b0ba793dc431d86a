package cache

import (
	"container/list"
	"sync"
)

// lifoCache evicts the key inserted most recently, i.e. the last successful
// insertion of a new key. Like FIFO, insertion order never changes after
// first Set.
type lifoCache[K comparable, V any] struct {
	capacity int
	mu       sync.RWMutex
	items    map[K]*list.Element
	order    *list.List // Front = newest insertion, Back = oldest
	onEvict  EvictionCallback[K, V]
}

func newLIFO[K comparable, V any](capacity int, onEvict EvictionCallback[K, V]) *lifoCache[K, V] {
	return &lifoCache[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element),
		order:    list.New(),
		onEvict:  onEvict,
	}
}

func (c *lifoCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if elem, ok := c.items[key]; ok {
		return elem.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

func (c *lifoCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Overwrite keeps the original insertion position.
	if elem, ok := c.items[key]; ok {
		elem.Value.(*entry[K, V]).value = value
		return
	}

	if c.order.Len() >= c.capacity {
		if newest := c.order.Front(); newest != nil {
			ent := newest.Value.(*entry[K, V])
			c.order.Remove(newest)
			delete(c.items, ent.key)
			if c.onEvict != nil {
				c.onEvict(ent.key, ent.value)
			}
		}
	}

	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
}

func (c *lifoCache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.Remove(elem)
		delete(c.items, key)
	}
}

func (c *lifoCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}

func (c *lifoCache[K, V]) Cap() int { return c.capacity }

func (c *lifoCache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]K, 0, c.order.Len())
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*entry[K, V]).key)
	}
	return keys
}

func (c *lifoCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*list.Element)
	c.order.Init()
}
