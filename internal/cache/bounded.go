package cache

import "container/list"

// BoundedCache is a fixed-capacity cache with least-recently-used eviction.
// It performs no I/O; persistence of evicted entries is layered by the domain
// wrappers that own it. Not safe for concurrent use on its own.
type BoundedCache[K comparable, V any] struct {
	capacity int
	order    *list.List
	entries  map[K]*list.Element
}

type boundedEntry[K comparable, V any] struct {
	key   K
	value V
}

// NewBoundedCache creates a cache that holds at most capacity entries.
func NewBoundedCache[K comparable, V any](capacity int) *BoundedCache[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &BoundedCache[K, V]{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[K]*list.Element, capacity),
	}
}

// Get returns the value for key and promotes it to most-recently-used.
func (c *BoundedCache[K, V]) Get(key K) (V, bool) {
	elem, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*boundedEntry[K, V]).value, true
}

// Put inserts or replaces key at the most-recently-used position. When the
// insertion pushes the cache over capacity, the least-recently-used entry is
// removed and returned so the caller can persist it.
func (c *BoundedCache[K, V]) Put(key K, value V) (K, V, bool) {
	if elem, ok := c.entries[key]; ok {
		c.order.Remove(elem)
		delete(c.entries, key)
	}

	c.entries[key] = c.order.PushFront(&boundedEntry[K, V]{key: key, value: value})

	if c.order.Len() <= c.capacity {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}

	oldest := c.order.Back()
	c.order.Remove(oldest)
	evicted := oldest.Value.(*boundedEntry[K, V])
	delete(c.entries, evicted.key)
	return evicted.key, evicted.value, true
}

// Contains reports whether key is cached, without touching recency.
func (c *BoundedCache[K, V]) Contains(key K) bool {
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of cached entries.
func (c *BoundedCache[K, V]) Len() int {
	return c.order.Len()
}

// Keys lists the cached keys from most to least recently used.
func (c *BoundedCache[K, V]) Keys() []K {
	keys := make([]K, 0, c.order.Len())
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*boundedEntry[K, V]).key)
	}
	return keys
}

// Each calls fn for every entry from most to least recently used, without
// touching recency. Iteration stops when fn returns false.
func (c *BoundedCache[K, V]) Each(fn func(key K, value V) bool) {
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		entry := elem.Value.(*boundedEntry[K, V])
		if !fn(entry.key, entry.value) {
			return
		}
	}
}
