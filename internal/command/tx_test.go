package command

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kromer-flow-plugin/internal/flow"
	"kromer-flow-plugin/internal/kromer"
	"kromer-flow-plugin/internal/shops"
)

func txDeps(t *testing.T, count int) Deps {
	t.Helper()
	d := testDeps(t)
	d.Links = shops.NewLinks(
		"https://map.example.com",
		"https://explorer.example.com",
		"https://heads.example.com",
		"https://shops.example.com",
	)

	backend := d.Kromer.(*fakeKromer)
	for i := 1; i <= count; i++ {
		backend.txs = append(backend.txs, kromer.Transaction{
			ID:    int64(i),
			From:  "kabc123456",
			To:    "kdef789012",
			Value: float64(i),
			Time:  "2026-08-28T10:00:00Z",
		})
	}
	return d
}

func TestOrMint(t *testing.T) {
	assert.Equal(t, "mint", orMint(""))
	assert.Equal(t, "kabc123456", orMint("kabc123456"))
}

func TestRelativeTxTime(t *testing.T) {
	// unparseable timestamps render verbatim
	assert.Equal(t, "soon", relativeTxTime("soon"))
	assert.Contains(t, relativeTxTime("2020-01-01T00:00:00Z"), "years ago")
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, parsePage(nil, 0))
	assert.Equal(t, 3, parsePage([]string{"kabc", "3"}, 1))
	assert.Equal(t, 1, parsePage([]string{"kabc", "wat"}, 1))
	assert.Equal(t, 1, parsePage([]string{"kabc", "0"}, 1))
}

func TestTxCommandPaging(t *testing.T) {
	ctx := context.Background()
	cmd := NewTxCommand(txDeps(t, 25))

	// first page: 10 rows plus a next-page row
	res := &flow.Response{}
	require.NoError(t, cmd.Run(ctx, []string{"kabc123456"}, res, "tx"))
	require.Len(t, res.Results(), 11)
	assert.Contains(t, res.Results()[0].Title, "#1 ")
	assert.Equal(t, "Next Page", res.Results()[10].Title)
	assert.Equal(t, "kr tx kabc123456 2", res.Results()[10].Action.Parameters[0])

	// middle page carries both paging rows
	res = &flow.Response{}
	require.NoError(t, cmd.Run(ctx, []string{"kabc123456", "2"}, res, "tx"))
	require.Len(t, res.Results(), 12)
	assert.Equal(t, "Previous Page", res.Results()[10].Title)
	assert.Equal(t, "Next Page", res.Results()[11].Title)

	// last page: 5 rows plus previous
	res = &flow.Response{}
	require.NoError(t, cmd.Run(ctx, []string{"kabc123456", "3"}, res, "tx"))
	require.Len(t, res.Results(), 6)
	assert.Equal(t, "Previous Page", res.Results()[5].Title)
}

func TestTxCommandEmpty(t *testing.T) {
	cmd := NewTxCommand(txDeps(t, 0))

	res := &flow.Response{}
	require.NoError(t, cmd.Run(context.Background(), []string{"kabc123456"}, res, "tx"))
	require.Len(t, res.Results(), 1)
	assert.Equal(t, "No transactions", res.Results()[0].Title)
}

func TestTxViewCommand(t *testing.T) {
	ctx := context.Background()
	cmd := NewTxViewCommand(txDeps(t, 3))

	res := &flow.Response{}
	require.NoError(t, cmd.Run(ctx, []string{"2"}, res, "txview"))
	require.Len(t, res.Results(), 4)
	assert.Contains(t, res.Results()[0].Title, "#2 ")
	assert.Equal(t, "kabc123456", res.Results()[1].Subtitle)
	assert.Equal(t, "2.00 KRO", res.Results()[3].Subtitle)
	assert.Equal(t,
		"https://explorer.example.com/transactions/2",
		fmt.Sprint(res.Results()[0].Action.Parameters[0]),
	)

	res = &flow.Response{}
	require.NoError(t, cmd.Run(ctx, []string{"-1"}, res, "txview"))
	assert.Equal(t, "Invalid transaction id", res.Results()[0].Title)
}

func TestLatestCommand(t *testing.T) {
	cmd := NewLatestCommand(txDeps(t, 4))

	res := &flow.Response{}
	require.NoError(t, cmd.Run(context.Background(), nil, res, "latest"))
	require.Len(t, res.Results(), 4)
	assert.Contains(t, res.Results()[0].Title, "#1 ")
}

func TestWalletsCommand(t *testing.T) {
	ctx := context.Background()
	d := txDeps(t, 0)
	cmd := NewWalletsCommand(d)

	res := &flow.Response{}
	require.NoError(t, cmd.Run(ctx, nil, res, "wallets"))
	require.Len(t, res.Results(), 1)
	assert.Equal(t, "No stored wallets", res.Results()[0].Title)

	require.NoError(t, d.Keys.Save(ctx, "kabc123456", "hunter2"))

	res = &flow.Response{}
	require.NoError(t, cmd.Run(ctx, nil, res, "wallets"))
	require.Len(t, res.Results(), 1)
	assert.Contains(t, res.Results()[0].Title, "kabc123456")
	assert.Contains(t, res.Results()[0].Subtitle, "100.00 KRO")
}

func TestImportCommand(t *testing.T) {
	ctx := context.Background()
	d := testDeps(t)
	cmd := NewImportCommand(d)

	res := &flow.Response{}
	require.NoError(t, cmd.Run(ctx, []string{"hunter2"}, res, "import"))
	require.Len(t, res.Results(), 1)
	assert.Contains(t, res.Results()[0].Title, "Wallet imported")
	assert.Contains(t, res.Results()[0].Subtitle, "kabc123456")

	key, err := d.Keys.Load(ctx, "kabc123456")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", key)
}

func TestDeleteCommand(t *testing.T) {
	ctx := context.Background()
	d := testDeps(t)
	cmd := NewDeleteCommand(d)

	res := &flow.Response{}
	require.NoError(t, cmd.Run(ctx, []string{"kabc123456"}, res, "delete"))
	assert.Contains(t, res.Results()[0].Title, "No key found")

	require.NoError(t, d.Keys.Save(ctx, "kabc123456", "hunter2"))

	res = &flow.Response{}
	require.NoError(t, cmd.Run(ctx, []string{"kabc123456"}, res, "delete"))
	assert.Contains(t, res.Results()[0].Title, "Wallet deleted")

	ok, err := d.Keys.Has(ctx, "kabc123456")
	require.NoError(t, err)
	assert.False(t, ok)
}
