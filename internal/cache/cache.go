package cache

import "sync"

// Cache is a generic thread-safe memoization map with no eviction.
//
// Cache is safe for concurrent use.
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V
}

// New creates an empty cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]V)}
}

// Get retrieves a value from the cache.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[key]
	return v, ok
}

// GetOrCreate returns the cached value for key, building it via create if
// absent. The lookup and the insert each take the lock for a short critical
// section, but create itself runs unlocked: two goroutines racing to build
// the same key may both call create, and the last one to store wins. This
// is safe here because create is expected to be a pure function of key, so
// redundant builds are semantically identical and cheap to discard.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}

	v := create()

	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()
	return v
}

// Len returns the number of entries currently cached.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
