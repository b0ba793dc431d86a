package cache

import (
	"container/list"
	"sort"
	"sync"
)

// lfuEntry carries the access count alongside the key-value pair so a key can
// be moved between frequency buckets in O(1).
type lfuEntry[K comparable, V any] struct {
	key   K
	value V
	freq  int
}

// lfuCache evicts the key with the lowest access count. Keys sharing the
// minimum frequency are ordered by recency, so the tie-break victim is the
// least recently used among them; for keys that were never read, this is the
// earliest insertion.
type lfuCache[K comparable, V any] struct {
	capacity int
	mu       sync.Mutex
	items    map[K]*list.Element
	buckets  map[int]*list.List // frequency -> entries, Front = most recent
	minFreq  int
	onEvict  EvictionCallback[K, V]
}

func newLFU[K comparable, V any](capacity int, onEvict EvictionCallback[K, V]) *lfuCache[K, V] {
	return &lfuCache[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element),
		buckets:  make(map[int]*list.List),
		onEvict:  onEvict,
	}
}

func (c *lfuCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.touch(elem)
	return elem.Value.(*lfuEntry[K, V]).value, true
}

func (c *lfuCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Overwrite counts as an access, like a successful Get.
	if elem, ok := c.items[key]; ok {
		elem.Value.(*lfuEntry[K, V]).value = value
		c.touch(elem)
		return
	}

	if len(c.items) >= c.capacity {
		c.evictMin()
	}

	ent := &lfuEntry[K, V]{key: key, value: value, freq: 1}
	c.items[key] = c.bucket(1).PushFront(ent)
	c.minFreq = 1
}

// touch moves an entry from its current frequency bucket to the next one,
// marking it most recent within that bucket.
func (c *lfuCache[K, V]) touch(elem *list.Element) {
	ent := elem.Value.(*lfuEntry[K, V])
	old := c.buckets[ent.freq]
	old.Remove(elem)
	if old.Len() == 0 {
		delete(c.buckets, ent.freq)
		if c.minFreq == ent.freq {
			c.minFreq++
		}
	}
	ent.freq++
	c.items[ent.key] = c.bucket(ent.freq).PushFront(ent)
}

// evictMin removes the least recently used entry of the minimum-frequency
// bucket. Capacity > 0 guarantees the bucket is non-empty here.
func (c *lfuCache[K, V]) evictMin() {
	bucket := c.buckets[c.minFreq]
	victim := bucket.Back()
	if victim == nil {
		return
	}
	ent := victim.Value.(*lfuEntry[K, V])
	bucket.Remove(victim)
	if bucket.Len() == 0 {
		delete(c.buckets, c.minFreq)
	}
	delete(c.items, ent.key)
	if c.onEvict != nil {
		c.onEvict(ent.key, ent.value)
	}
}

func (c *lfuCache[K, V]) bucket(freq int) *list.List {
	b, ok := c.buckets[freq]
	if !ok {
		b = list.New()
		c.buckets[freq] = b
	}
	return b
}

func (c *lfuCache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return
	}
	ent := elem.Value.(*lfuEntry[K, V])
	bucket := c.buckets[ent.freq]
	bucket.Remove(elem)
	if bucket.Len() == 0 {
		delete(c.buckets, ent.freq)
		if c.minFreq == ent.freq {
			c.resetMinFreq()
		}
	}
	delete(c.items, key)
}

// resetMinFreq rescans bucket frequencies after the minimum bucket emptied.
// The bucket count is bounded by the capacity, so this stays cheap.
func (c *lfuCache[K, V]) resetMinFreq() {
	c.minFreq = 0
	for freq := range c.buckets {
		if c.minFreq == 0 || freq < c.minFreq {
			c.minFreq = freq
		}
	}
}

func (c *lfuCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *lfuCache[K, V]) Cap() int { return c.capacity }

func (c *lfuCache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	freqs := make([]int, 0, len(c.buckets))
	for freq := range c.buckets {
		freqs = append(freqs, freq)
	}
	// Ascending frequency, least recent first within each bucket.
	sort.Ints(freqs)

	keys := make([]K, 0, len(c.items))
	for _, freq := range freqs {
		for elem := c.buckets[freq].Back(); elem != nil; elem = elem.Prev() {
			keys = append(keys, elem.Value.(*lfuEntry[K, V]).key)
		}
	}
	return keys
}

func (c *lfuCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*list.Element)
	c.buckets = make(map[int]*list.List)
	c.minFreq = 0
}
