package command

import (
	"context"

	"kromer-flow-plugin/internal/flow"
	"kromer-flow-plugin/pkg/format"
)

// NewImportCommand stores a private key in the OS keyring. The wallet
// backend resolves the key to its address first, so a bad key is rejected
// before anything is persisted.
func NewImportCommand(d Deps) *Command {
	return &Command{
		Name:        "import",
		Description: "Import a wallet private key",
		Usage:       "import <privateKey>",
		Run: func(ctx context.Context, args []string, res *flow.Response, alias string) error {
			if len(args) == 0 {
				res.Add(flow.Result{Title: "Usage: " + format.Command(d.Keyword, "import", format.Arg("privateKey", false))})
				return nil
			}
			privateKey := args[0]

			address, err := d.Kromer.Login(ctx, privateKey)
			if err != nil {
				return err
			}
			if err := d.Keys.Save(ctx, address, privateKey); err != nil {
				return err
			}
			res.Add(flow.Result{
				Title:    iconImport + " Wallet imported",
				Subtitle: "Address: " + address,
				Action:   flow.ChangeQuery(format.Command(d.Keyword, "balance", address)),
			})
			return nil
		},
	}
}

// NewDeleteCommand removes a stored private key.
func NewDeleteCommand(d Deps) *Command {
	return &Command{
		Name:        "delete",
		Description: "Delete a stored wallet key",
		Usage:       "delete <address|alias>",
		Run: func(ctx context.Context, args []string, res *flow.Response, alias string) error {
			if len(args) == 0 {
				res.Add(flow.Result{Title: "Usage: " + format.Command(d.Keyword, "delete", format.Arg("address|alias", false))})
				return nil
			}

			address, err := d.Aliases.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			stored, err := d.Keys.Has(ctx, address)
			if err != nil {
				return err
			}
			if !stored {
				res.Add(flow.Result{Title: iconWarn + " No key found", Subtitle: "Address: " + address})
				return nil
			}

			if err := d.Keys.Delete(ctx, address); err != nil {
				return err
			}
			res.Add(flow.Result{Title: iconDelete + " Wallet deleted", Subtitle: "Address: " + address})
			return nil
		},
	}
}

// NewWalletsCommand lists all stored wallets with their balances.
func NewWalletsCommand(d Deps) *Command {
	return &Command{
		Name:        "wallets",
		Description: "List stored wallets with balances",
		Usage:       "wallets",
		Aliases:     []string{"wallet"},
		Run: func(ctx context.Context, args []string, res *flow.Response, alias string) error {
			addresses, err := d.Keys.List(ctx)
			if err != nil {
				return err
			}
			if len(addresses) == 0 {
				res.Add(flow.Result{
					Title:    "No stored wallets",
					Subtitle: "Usage: " + format.Command(d.Keyword, "import", format.Arg("privateKey", false)),
				})
				return nil
			}

			for _, wb := range fetchBalances(ctx, d.Kromer, addresses) {
				subtitle := "Balance: " + format.Balance(wb.balance)
				if wb.err != nil {
					subtitle = "Error: " + wb.err.Error()
				}
				res.Add(flow.Result{
					Title:    iconBalance + " " + wb.address,
					Subtitle: subtitle,
					Action:   flow.ChangeQuery(format.Command(d.Keyword, "tx", wb.address)),
				})
			}
			return nil
		},
	}
}
