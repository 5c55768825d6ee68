package command

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"kromer-flow-plugin/internal/flow"
	"kromer-flow-plugin/internal/kromer"
	"kromer-flow-plugin/pkg/format"
)

const txPageSize = 10

func txResult(tx kromer.Transaction, links interface{ Transaction(int64) string }) flow.Result {
	subtitle := relativeTxTime(tx.Time)
	if tx.Metadata != "" {
		subtitle += " • " + tx.Metadata
	}
	return flow.Result{
		Title:    fmt.Sprintf("#%d %s → %s • %s", tx.ID, orMint(tx.From), orMint(tx.To), format.Balance(tx.Value)),
		Subtitle: subtitle,
		Action:   flow.OpenURL(links.Transaction(tx.ID)),
	}
}

func orMint(address string) string {
	if address == "" {
		return "mint"
	}
	return address
}

func relativeTxTime(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return format.RelativeTime(t)
}

func parsePage(args []string, index int) int {
	if len(args) <= index {
		return 1
	}
	page, err := strconv.Atoi(args[index])
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func addPaging(res *flow.Response, query func(parts ...string) string, base []string, page, shown, total int) {
	if page > 1 {
		res.Add(flow.Result{
			Title:    "Previous Page",
			Subtitle: fmt.Sprintf("Go to page %d", page-1),
			Action:   flow.ChangeQuery(query(append(base, strconv.Itoa(page-1))...)),
		})
	}
	if page*txPageSize < total {
		res.Add(flow.Result{
			Title:    "Next Page",
			Subtitle: fmt.Sprintf("Go to page %d (%d of %d shown)", page+1, page*txPageSize-txPageSize+shown, total),
			Action:   flow.ChangeQuery(query(append(base, strconv.Itoa(page+1))...)),
		})
	}
}

// NewTxCommand lists a wallet's transaction history, paged.
func NewTxCommand(d Deps) *Command {
	return &Command{
		Name:        "tx",
		Description: "Show the transaction history of a wallet",
		Usage:       "tx <address|alias> [page]",
		Aliases:     []string{"history"},
		Run: func(ctx context.Context, args []string, res *flow.Response, alias string) error {
			if len(args) == 0 {
				res.Add(flow.Result{Title: "Usage: " + format.Command(d.Keyword, "tx", format.Arg("address|alias", false), format.Arg("page", true))})
				return nil
			}

			address, err := d.Aliases.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			page := parsePage(args, 1)

			txs, total, err := d.Kromer.AddressTransactions(ctx, address, txPageSize, (page-1)*txPageSize)
			if err != nil {
				return err
			}
			if len(txs) == 0 {
				res.Add(flow.Result{Title: "No transactions", Subtitle: "Address: " + address})
				return nil
			}
			for _, tx := range txs {
				res.Add(txResult(tx, d.Links))
			}
			addPaging(res, func(parts ...string) string {
				return format.Command(d.Keyword, append([]string{alias}, parts...)...)
			}, []string{args[0]}, page, len(txs), total)
			return nil
		},
	}
}

// NewTxViewCommand shows one transaction by id.
func NewTxViewCommand(d Deps) *Command {
	return &Command{
		Name:        "txview",
		Description: "Show a single transaction by id",
		Usage:       "txview <id>",
		Run: func(ctx context.Context, args []string, res *flow.Response, alias string) error {
			if len(args) == 0 {
				res.Add(flow.Result{Title: "Usage: " + format.Command(d.Keyword, "txview", format.Arg("id", false))})
				return nil
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				res.Add(flow.Result{Title: "Invalid transaction id", Subtitle: args[0]})
				return nil
			}

			tx, err := d.Kromer.GetTransaction(ctx, id)
			if err != nil {
				return err
			}
			res.Add(
				txResult(*tx, d.Links),
				flow.Result{Title: "From", Subtitle: orMint(tx.From)},
				flow.Result{Title: "To", Subtitle: orMint(tx.To)},
				flow.Result{Title: "Amount", Subtitle: format.Balance(tx.Value)},
			)
			if tx.Metadata != "" {
				res.Add(flow.Result{Title: "Metadata", Subtitle: tx.Metadata})
			}
			return nil
		},
	}
}

// NewLatestCommand lists the newest transactions across all wallets, paged.
func NewLatestCommand(d Deps) *Command {
	return &Command{
		Name:        "latest",
		Description: "Show the latest transactions on the ledger",
		Usage:       "latest [page]",
		Run: func(ctx context.Context, args []string, res *flow.Response, alias string) error {
			page := parsePage(args, 0)

			txs, total, err := d.Kromer.LatestTransactions(ctx, txPageSize, (page-1)*txPageSize)
			if err != nil {
				return err
			}
			if len(txs) == 0 {
				res.Add(flow.Result{Title: "No transactions"})
				return nil
			}
			for _, tx := range txs {
				res.Add(txResult(tx, d.Links))
			}
			addPaging(res, func(parts ...string) string {
				return format.Command(d.Keyword, append([]string{alias}, parts...)...)
			}, nil, page, len(txs), total)
			return nil
		},
	}
}
