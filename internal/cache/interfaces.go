package cache

import (
	"context"
	"time"
)

// PayloadCache stores raw response payloads keyed by request URL.
// This abstraction allows swapping between the in-process memory cache and a
// Redis cache that survives plugin restarts, without changing the fetch path.
type PayloadCache interface {
	// Get retrieves a payload by key. Returns ErrCacheMiss if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a payload with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a payload by key.
	Delete(ctx context.Context, key string) error

	// GetOrSet retrieves a payload or computes and stores it if missing.
	GetOrSet(ctx context.Context, key string, ttl time.Duration, fn func() ([]byte, error)) ([]byte, error)

	// Clear removes all entries from the cache.
	Clear(ctx context.Context) error
}

// CacheError is a sentinel error type for cache operations.
type CacheError string

func (e CacheError) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found in cache.
	ErrCacheMiss CacheError = "cache miss"
)
