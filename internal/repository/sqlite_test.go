package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "plugin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAliasRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SetAlias(ctx, "savings", "kabc123456"))

	addr, err := store.Resolve(ctx, "savings")
	require.NoError(t, err)
	assert.Equal(t, "kabc123456", addr)

	// upsert replaces the address
	require.NoError(t, store.SetAlias(ctx, "savings", "kdef789012"))
	addr, err = store.Resolve(ctx, "savings")
	require.NoError(t, err)
	assert.Equal(t, "kdef789012", addr)
}

func TestResolvePassthrough(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// non-alias input comes back unchanged
	addr, err := store.Resolve(ctx, "kabc123456")
	require.NoError(t, err)
	assert.Equal(t, "kabc123456", addr)
}

func TestDeleteAlias(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SetAlias(ctx, "savings", "kabc123456"))
	require.NoError(t, store.DeleteAlias(ctx, "savings"))

	addr, err := store.Resolve(ctx, "savings")
	require.NoError(t, err)
	assert.Equal(t, "savings", addr)

	err = store.DeleteAlias(ctx, "savings")
	assert.ErrorIs(t, err, ErrAliasNotFound)
}

func TestListAliases(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	aliases, err := store.ListAliases(ctx)
	require.NoError(t, err)
	assert.Empty(t, aliases)

	require.NoError(t, store.SetAlias(ctx, "zulu", "kaaa000000"))
	require.NoError(t, store.SetAlias(ctx, "alpha", "kbbb000000"))

	aliases, err = store.ListAliases(ctx)
	require.NoError(t, err)
	require.Len(t, aliases, 2)
	assert.Equal(t, "alpha", aliases[0].Name)
	assert.Equal(t, "zulu", aliases[1].Name)
	assert.False(t, aliases[0].CreatedAt.IsZero())
}

func TestWallets(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.AddWallet(ctx, "kabc123456"))
	// duplicates are a no-op
	require.NoError(t, store.AddWallet(ctx, "kabc123456"))
	require.NoError(t, store.AddWallet(ctx, "kdef789012"))

	wallets, err := store.ListWallets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"kabc123456", "kdef789012"}, wallets)

	require.NoError(t, store.RemoveWallet(ctx, "kabc123456"))
	// removing an unknown wallet is tolerated
	require.NoError(t, store.RemoveWallet(ctx, "kabc123456"))

	wallets, err = store.ListWallets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"kdef789012"}, wallets)
}
