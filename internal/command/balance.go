package command

import (
	"context"

	"kromer-flow-plugin/internal/flow"
	"kromer-flow-plugin/pkg/format"
)

// NewBalanceCommand shows the balance of a stored wallet.
func NewBalanceCommand(d Deps) *Command {
	return &Command{
		Name:        "balance",
		Description: "Show the balance of a wallet",
		Usage:       "balance <address|alias>",
		Aliases:     []string{"bal"},
		Run: func(ctx context.Context, args []string, res *flow.Response, alias string) error {
			if len(args) == 0 {
				res.Add(flow.Result{Title: "Usage: " + format.Command(d.Keyword, "balance", format.Arg("address|alias", false))})
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
				res.Add(flow.Result{
					Title:    iconWarn + " No key found",
					Subtitle: "Address: " + address,
				})
				return nil
			}

			record, err := d.Kromer.GetAddress(ctx, address)
			if err != nil {
				return err
			}
			res.Add(flow.Result{
				Title:    iconBalance + " Balance: " + format.Balance(record.Balance),
				Subtitle: "Address: " + address,
				Action:   flow.OpenURL(d.Links.Address(address)),
			})
			return nil
		},
	}
}
