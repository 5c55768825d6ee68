package keystore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

// memWallets is an in-memory WalletRepository for tests.
type memWallets struct {
	addresses []string
}

func (m *memWallets) AddWallet(ctx context.Context, address string) error {
	for _, a := range m.addresses {
		if a == address {
			return nil
		}
	}
	m.addresses = append(m.addresses, address)
	return nil
}

func (m *memWallets) RemoveWallet(ctx context.Context, address string) error {
	out := m.addresses[:0]
	for _, a := range m.addresses {
		if a != address {
			out = append(out, a)
		}
	}
	m.addresses = out
	return nil
}

func (m *memWallets) ListWallets(ctx context.Context) ([]string, error) {
	return append([]string{}, m.addresses...), nil
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	keyring.MockInit()
	return New("keystore-test", &memWallets{})
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Save(ctx, "kabc123456", "hunter2"))

	key, err := s.Load(ctx, "kabc123456")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", key)

	addresses, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"kabc123456"}, addresses)
}

func TestLoadMissingKey(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Load(ctx, "knosuchkey")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestHas(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ok, err := s.Has(ctx, "kabc123456")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "kabc123456", "hunter2"))

	ok, err = s.Has(ctx, "kabc123456")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Save(ctx, "kabc123456", "hunter2"))
	require.NoError(t, s.Delete(ctx, "kabc123456"))

	_, err := s.Load(ctx, "kabc123456")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	addresses, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, addresses)

	// deleting again is tolerated
	require.NoError(t, s.Delete(ctx, "kabc123456"))
}
