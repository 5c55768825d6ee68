package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPayloadCacheGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPayloadCache()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "page", []byte("body"), time.Minute))

	got, err := c.Get(ctx, "page")
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), got)

	// the cache hands out copies, not the stored slice
	got[0] = 'x'
	again, err := c.Get(ctx, "page")
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), again)
}

func TestMemoryPayloadCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPayloadCache()

	require.NoError(t, c.Set(ctx, "page", []byte("body"), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, err := c.Get(ctx, "page")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryPayloadCacheGetOrSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPayloadCache()

	calls := 0
	fetch := func() ([]byte, error) {
		calls++
		return []byte("fetched"), nil
	}

	got, err := c.GetOrSet(ctx, "page", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, []byte("fetched"), got)
	assert.Equal(t, 1, calls)

	got, err = c.GetOrSet(ctx, "page", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, []byte("fetched"), got)
	assert.Equal(t, 1, calls)
}

func TestMemoryPayloadCacheDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPayloadCache()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, c.Delete(ctx, "a"))
	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Clear(ctx))
	_, err = c.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
