package command

import (
	"context"

	"kromer-flow-plugin/internal/flow"
	"kromer-flow-plugin/pkg/format"
)

// NewNamesCommand lists the names owned by a wallet.
func NewNamesCommand(d Deps) *Command {
	return &Command{
		Name:        "names",
		Description: "List the names owned by a wallet",
		Usage:       "names <address|alias>",
		Run: func(ctx context.Context, args []string, res *flow.Response, alias string) error {
			if len(args) == 0 {
				res.Add(flow.Result{Title: "Usage: " + format.Command(d.Keyword, "names", format.Arg("address|alias", false))})
				return nil
			}

			address, err := d.Aliases.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			names, err := d.Kromer.AddressNames(ctx, address)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				res.Add(flow.Result{Title: "No names", Subtitle: "Address: " + address})
				return nil
			}
			for _, n := range names {
				res.Add(flow.Result{
					Title:    iconName + " " + n.Name + ".kro",
					Subtitle: "Owner: " + n.Owner,
					Action:   flow.OpenURL(d.Links.Address(n.Owner)),
				})
			}
			return nil
		},
	}
}
