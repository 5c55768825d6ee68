package cache

import (
	"sync"
	"time"
)

// DefaultTTL is the expiry applied when no explicit TTL is configured.
const DefaultTTL = 5 * time.Minute

// entry represents a cached value with expiration.
type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// isExpired checks if the entry has expired.
func (e *entry[T]) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// Cache is a TTL-bound key/value store. Every entry shares the cache's
// time-to-live; expired entries are evicted lazily when a read finds them.
// Reads and writes are mutex-guarded, but overlapping fetch-and-fill
// sequences are not serialized: the last write wins.
type Cache[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[T]
}

// New creates a cache with the given TTL. A non-positive TTL falls back to
// DefaultTTL.
func New[T any](ttl time.Duration) *Cache[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[T]{
		ttl:     ttl,
		entries: make(map[string]entry[T]),
	}
}

// Set stores a value under key, resetting the expiry of any existing entry.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[T]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Get retrieves a value by key. An expired entry found during lookup is
// evicted and reported as absent.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if e.isExpired() {
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return e.value, true
}

// Has reports whether Get would return a value for key.
func (c *Cache[T]) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Entries returns all currently-unexpired values. Order is unspecified.
func (c *Cache[T]) Entries() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	values := make([]T, 0, len(c.entries))
	for _, e := range c.entries {
		if !e.isExpired() {
			values = append(values, e.value)
		}
	}
	return values
}

// Size returns the number of unexpired entries.
func (c *Cache[T]) Size() int {
	return len(c.Entries())
}

// Clear empties the store unconditionally.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry[T])
}
