package cache

import "sync"

// LRU is a generic thread-safe cache with a hard capacity.
//
// LRU must not be copied after creation (has mutex).
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*lruNode[K, V]
	order    lruList[K, V]
	capacity int
	onEvict  func(K, V)

	hits      uint64
	misses    uint64
	evictions uint64
}

// NewLRU creates a cache holding at most capacity entries. A capacity
// below 1 is treated as 1. onEvict, if non-nil, is called for every entry
// removed to make room, by Delete, or by Clear.
func NewLRU[K comparable, V any](capacity int, onEvict func(K, V)) *LRU[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[K, V]{
		entries:  make(map[K]*lruNode[K, V], capacity),
		capacity: capacity,
		onEvict:  onEvict,
	}
}

// Get retrieves a value and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.MoveToFront(node)
	return node.value, true
}

// Peek retrieves a value without changing its recency or the statistics.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.entries[key]; ok {
		return node.value, true
	}
	var zero V
	return zero, false
}

// Set stores a value. Replacing an existing value does not call onEvict
// for the old one.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.entries[key]; ok {
		node.value = value
		c.order.MoveToFront(node)
		return
	}
	c.insert(key, value)
}

// GetOrCreate returns the cached value for key, creating it on a miss.
// create runs under the cache lock, so concurrent misses on the same key
// create the value once. A create error is returned and nothing is cached.
func (c *LRU[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.entries[key]; ok {
		c.hits++
		c.order.MoveToFront(node)
		return node.value, nil
	}
	c.misses++

	value, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.insert(key, value)
	return value, nil
}

// Delete removes an entry, calling onEvict for it.
// Returns true if the entry was found and removed.
func (c *LRU[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		return false
	}
	c.remove(node)
	return true
}

// Clear removes all entries, calling onEvict for each from least to most
// recently used.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for node := c.order.Oldest(); node != nil; node = c.order.Oldest() {
		c.remove(node)
	}
	c.order.Clear()
}

// Len returns the number of entries in the cache.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int {
	return c.capacity
}

// Stats returns cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// insert adds a new entry, evicting the oldest one if the cache is full.
// Caller must hold c.mu.
func (c *LRU[K, V]) insert(key K, value V) {
	if len(c.entries) >= c.capacity {
		if oldest := c.order.Oldest(); oldest != nil {
			c.evictions++
			c.remove(oldest)
		}
	}
	c.entries[key] = c.order.PushFront(key, value)
}

// remove unlinks a node and reports it to onEvict.
// Caller must hold c.mu.
func (c *LRU[K, V]) remove(node *lruNode[K, V]) {
	c.order.Remove(node)
	delete(c.entries, node.key)
	if c.onEvict != nil {
		c.onEvict(node.key, node.value)
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the maximum number of entries.
	Capacity int
	// Hits is the number of lookups that found an entry.
	Hits uint64
	// Misses is the number of lookups that did not.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), or 0 before the first lookup.
	HitRate float64
	// Evictions is the number of entries removed to make room.
	Evictions uint64
}
