package cache

import (
	"context"
	"sync"
	"time"
)

type payloadEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e *payloadEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// MemoryPayloadCache is an in-memory implementation of PayloadCache.
// The default backend: a launcher plugin is a single short-lived process, so
// expired entries are pruned lazily on read instead of by a background sweep.
type MemoryPayloadCache struct {
	mu      sync.RWMutex
	entries map[string]*payloadEntry
}

// NewMemoryPayloadCache creates a new in-memory payload cache.
func NewMemoryPayloadCache() *MemoryPayloadCache {
	return &MemoryPayloadCache{
		entries: make(map[string]*payloadEntry),
	}
}

// Get retrieves a payload by key.
func (c *MemoryPayloadCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if e.isExpired() {
		delete(c.entries, key)
		return nil, ErrCacheMiss
	}

	result := make([]byte, len(e.value))
	copy(result, e.value)
	return result, nil
}

// Set stores a payload with the given TTL.
func (c *MemoryPayloadCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	c.entries[key] = &payloadEntry{
		value:     valueCopy,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a payload by key.
func (c *MemoryPayloadCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// GetOrSet retrieves a payload or computes and stores it if missing.
func (c *MemoryPayloadCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fn func() ([]byte, error)) ([]byte, error) {
	if value, err := c.Get(ctx, key); err == nil {
		return value, nil
	}

	value, err := fn()
	if err != nil {
		return nil, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		return nil, err
	}
	return value, nil
}

// Clear removes all entries from the cache.
func (c *MemoryPayloadCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*payloadEntry)
	return nil
}
