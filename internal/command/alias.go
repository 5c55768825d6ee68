package command

import (
	"context"
	"errors"

	"kromer-flow-plugin/internal/flow"
	"kromer-flow-plugin/internal/kromer"
	"kromer-flow-plugin/internal/repository"
	"kromer-flow-plugin/pkg/format"
)

// NewAliasCommand binds a shorthand name to a wallet address.
func NewAliasCommand(d Deps) *Command {
	return &Command{
		Name:        "alias",
		Description: "Bind a shorthand name to a wallet address",
		Usage:       "alias <name> <address>",
		Run: func(ctx context.Context, args []string, res *flow.Response, alias string) error {
			if len(args) < 2 {
				res.Add(flow.Result{Title: "Usage: " + format.Command(d.Keyword, "alias", format.Arg("name", false), format.Arg("address", false))})
				return nil
			}
			name, address := args[0], args[1]

			if kromer.IsV2Address(name, d.AddressPrefix) {
				res.Add(flow.Result{
					Title:    iconWarn + " Alias looks like an address",
					Subtitle: "Pick a name that cannot be confused with a wallet address",
				})
				return nil
			}
			if !kromer.IsV2Address(address, d.AddressPrefix) {
				res.Add(flow.Result{
					Title:    iconError + " Invalid address",
					Subtitle: address + " is not a valid Kromer v2 address",
				})
				return nil
			}

			if err := d.Aliases.SetAlias(ctx, name, address); err != nil {
				return err
			}
			res.Add(flow.Result{
				Title:    iconAlias + " Alias saved",
				Subtitle: name + " → " + address,
			})
			return nil
		},
	}
}

// NewUnaliasCommand removes a shorthand name.
func NewUnaliasCommand(d Deps) *Command {
	return &Command{
		Name:        "unalias",
		Description: "Remove a shorthand name",
		Usage:       "unalias <name>",
		Run: func(ctx context.Context, args []string, res *flow.Response, alias string) error {
			if len(args) == 0 {
				res.Add(flow.Result{Title: "Usage: " + format.Command(d.Keyword, "unalias", format.Arg("name", false))})
				return nil
			}
			name := args[0]

			err := d.Aliases.DeleteAlias(ctx, name)
			if errors.Is(err, repository.ErrAliasNotFound) {
				res.Add(flow.Result{Title: iconWarn + " Unknown alias", Subtitle: name})
				return nil
			}
			if err != nil {
				return err
			}
			res.Add(flow.Result{Title: iconDelete + " Alias removed", Subtitle: name})
			return nil
		},
	}
}

// NewAliasesCommand lists all saved aliases.
func NewAliasesCommand(d Deps) *Command {
	return &Command{
		Name:        "aliases",
		Description: "List all saved aliases",
		Usage:       "aliases",
		Run: func(ctx context.Context, args []string, res *flow.Response, alias string) error {
			aliases, err := d.Aliases.ListAliases(ctx)
			if err != nil {
				return err
			}
			if len(aliases) == 0 {
				res.Add(flow.Result{
					Title:    "No aliases saved",
					Subtitle: "Usage: " + format.Command(d.Keyword, "alias", format.Arg("name", false), format.Arg("address", false)),
				})
				return nil
			}
			for _, a := range aliases {
				res.Add(flow.Result{
					Title:    iconAlias + " " + a.Name,
					Subtitle: a.Address,
					Action:   flow.ChangeQuery(format.Command(d.Keyword, "balance", a.Name)),
				})
			}
			return nil
		},
	}
}
