package command

import (
	"context"
	"fmt"
	"strconv"

	"kromer-flow-plugin/internal/flow"
	"kromer-flow-plugin/internal/shops"
	"kromer-flow-plugin/pkg/format"
)

// NewShopCommand browses and searches shops and their listings.
func NewShopCommand(d Deps) *Command {
	c := &shopCommand{deps: d}
	return &Command{
		Name:        "shop",
		Description: "Browse and search Kromer shops and items",
		Usage:       "shop list | info <uid> | items <uid> [sort] | item <uid> <id> | search shop|item|shops-by-item <term>",
		Aliases:     []string{"s"},
		Run:         c.run,
	}
}

type shopCommand struct {
	deps Deps
}

func (c *shopCommand) query(alias string, parts ...string) string {
	return format.Command(c.deps.Keyword, append([]string{alias}, parts...)...)
}

func (c *shopCommand) run(ctx context.Context, args []string, res *flow.Response, alias string) error {
	if len(args) == 0 {
		c.menu(res, alias)
		return nil
	}
	subcommand, rest := args[0], args[1:]

	// Warm shop cache
	if err := c.deps.Registry.EnsureCache(ctx); err != nil {
		return err
	}

	switch subcommand {
	case "list":
		return c.list(ctx, res, alias)
	case "info":
		return c.info(ctx, rest, res, alias)
	case "items":
		return c.items(ctx, rest, res, alias)
	case "item":
		return c.item(ctx, rest, res, alias)
	case "search":
		return c.search(ctx, rest, res, alias)
	default:
		res.Add(flow.Result{
			Title:    "Unknown subcommand",
			Subtitle: fmt.Sprintf("Run %s to see available options", c.query(alias)),
		})
		return nil
	}
}

func (c *shopCommand) menu(res *flow.Response, alias string) {
	entries := []struct{ cmd, desc string }{
		{"list", "Browse all shops"},
		{"info ", "View shop details"},
		{"items ", "View all items from a shop"},
		{"item ", "View a specific item in a shop"},
		{"search shop ", "Search for shops by keyword"},
		{"search item ", "Search for items globally"},
		{"search shops-by-item ", "Find shops that sell a keyword"},
	}
	for _, e := range entries {
		res.Add(flow.Result{
			Title:    e.cmd,
			Subtitle: e.desc,
			Action:   flow.ChangeQuery(c.query(alias, e.cmd)),
		})
	}
}

func (c *shopCommand) list(ctx context.Context, res *flow.Response, alias string) error {
	all, err := c.deps.Registry.FetchAll(ctx, false)
	if err != nil {
		return err
	}
	for _, s := range all {
		subtitle := s.Description()
		if subtitle == "" {
			subtitle = "No description"
		}
		res.Add(flow.Result{
			Title:    s.Name(),
			Subtitle: subtitle,
			Action:   flow.ChangeQuery(c.query(alias, "info", s.UID())),
			IcoPath:  c.deps.Links.OwnerHead(s),
		})
	}
	return nil
}

func (c *shopCommand) info(ctx context.Context, args []string, res *flow.Response, alias string) error {
	if len(args) == 0 {
		res.Add(flow.Result{Title: "Usage", Subtitle: c.query(alias, "info", format.Arg("uid", false))})
		return nil
	}
	uid := args[0]

	shop, err := c.deps.Registry.FetchByUID(ctx, uid, true)
	if err != nil {
		return err
	}

	owner := shop.Owner()
	if owner == "" {
		owner = "Unknown"
	}
	res.Add(
		flow.Result{Title: shop.Name(), Subtitle: shop.Description()},
		flow.Result{Title: "Owner", Subtitle: owner, IcoPath: c.deps.Links.OwnerHead(shop)},
		flow.Result{
			Title:    "Total Listings",
			Subtitle: fmt.Sprintf("x%d (click to view)", c.deps.Registry.TotalListings(shop)),
			Action:   flow.ChangeQuery(c.query(alias, "items", uid)),
		},
		flow.Result{Title: "Total Stock", Subtitle: fmt.Sprintf("x%d", c.deps.Registry.TotalStock(shop))},
		flow.Result{
			Title:    "Map Location",
			Subtitle: "View in Bluemap",
			Action:   flow.OpenURL(c.deps.Links.ShopMap(shop)),
		},
		flow.Result{
			Title:    "View on Krawlet",
			Subtitle: "Open in browser",
			Action:   flow.OpenURL(c.deps.Links.ShopPage(shop)),
		},
	)
	return nil
}

func (c *shopCommand) items(ctx context.Context, args []string, res *flow.Response, alias string) error {
	if len(args) == 0 {
		res.Add(flow.Result{Title: "Usage", Subtitle: c.query(alias, "items", format.Arg("uid", false), format.Arg("sort", true))})
		return nil
	}
	uid := args[0]
	sortKey := shops.SortPrice
	if len(args) > 1 {
		sortKey = shops.ParseSortKey(args[1])
	}

	shop, err := c.deps.Registry.FetchByUID(ctx, uid, false)
	if err != nil {
		return err
	}
	items, err := c.deps.Registry.FetchListings(ctx, shop, sortKey, false)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		res.Add(flow.Result{Title: "No items", Subtitle: "This shop has no listings"})
		return nil
	}
	for _, i := range items {
		res.Add(flow.Result{
			Title:    fmt.Sprintf("%s (%dx)", i.Name(), i.Stock()),
			Subtitle: i.FormatPrices(),
			Action:   flow.ChangeQuery(c.query(alias, "item", uid, strconv.FormatInt(i.ID(), 10))),
			IcoPath:  c.deps.Links.ListingIcon(i),
		})
	}
	return nil
}

func (c *shopCommand) item(ctx context.Context, args []string, res *flow.Response, alias string) error {
	if len(args) < 2 {
		res.Add(flow.Result{Title: "Usage", Subtitle: c.query(alias, "item", format.Arg("uid", false), format.Arg("id", false))})
		return nil
	}
	uid := args[0]
	itemID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		res.Add(flow.Result{Title: "Invalid item id", Subtitle: args[1]})
		return nil
	}

	shop, err := c.deps.Registry.FetchByUID(ctx, uid, false)
	if err != nil {
		return err
	}
	item, err := c.deps.Registry.FetchListingByID(ctx, shop, itemID, true)
	if err != nil {
		return err
	}

	description := item.Description()
	if description == "" {
		description = "No description"
	}
	nbtNote := ""
	if item.NBT() != "" {
		nbtNote = " (with NBT)"
	}
	res.Add(
		flow.Result{Title: item.Name(), Subtitle: description, IcoPath: c.deps.Links.ListingIcon(item)},
		flow.Result{Title: "Stock", Subtitle: strconv.Itoa(item.Stock())},
		flow.Result{Title: "Prices", Subtitle: item.FormatPrices()},
		flow.Result{
			Title:    "View Shop",
			Subtitle: "Open shop details",
			Action:   flow.ChangeQuery(c.query(alias, "info", uid)),
		},
		flow.Result{
			Title:    fmt.Sprintf("View %s on Krawlet", item.Name()),
			Subtitle: "Open in browser" + nbtNote,
			Action:   flow.OpenURL(c.deps.Links.ListingPage(item)),
		},
		flow.Result{
			Title:    fmt.Sprintf("View %s on Krawlet", shop.Name()),
			Subtitle: "Open in browser",
			Action:   flow.OpenURL(c.deps.Links.ShopPage(shop)),
		},
	)
	return nil
}

func (c *shopCommand) search(ctx context.Context, args []string, res *flow.Response, alias string) error {
	if len(args) < 2 {
		res.Add(flow.Result{
			Title:    "Usage",
			Subtitle: c.query(alias, "search shop|item|shops-by-item", format.Arg("term", false)),
		})
		return nil
	}
	mode := args[0]
	term := ""
	for i, part := range args[1:] {
		if i > 0 {
			term += " "
		}
		term += part
	}

	switch mode {
	case "shop":
		found, err := c.deps.Registry.SearchShops(ctx, term, false)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			res.Add(flow.Result{Title: "No shops found", Subtitle: fmt.Sprintf("for '%s'", term)})
			return nil
		}
		for _, s := range found {
			res.Add(flow.Result{
				Title:    s.Name(),
				Subtitle: s.Description(),
				Action:   flow.ChangeQuery(c.query(alias, "info", s.UID())),
			})
		}

	case "item":
		found, err := c.deps.Registry.SearchListings(ctx, term, shops.SortPrice)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			res.Add(flow.Result{Title: "No items found", Subtitle: fmt.Sprintf("for '%s'", term)})
			return nil
		}
		for _, i := range found {
			uid := i.ShopKey()
			if s, ok := c.deps.Registry.ByID(i.ShopID()); ok {
				uid = s.UID()
			}
			res.Add(flow.Result{
				Title:    fmt.Sprintf("%s (%d)", i.Name(), i.Stock()),
				Subtitle: i.FormatPrices(),
				Action:   flow.ChangeQuery(c.query(alias, "item", uid, strconv.FormatInt(i.ID(), 10))),
			})
		}

	case "shops-by-item":
		found, err := c.deps.Registry.SearchShopsByItem(ctx, term)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			res.Add(flow.Result{Title: "No shops found", Subtitle: fmt.Sprintf("selling '%s'", term)})
			return nil
		}
		for _, s := range found {
			matched := shops.MatchItems(c.deps.Registry.Listings(s), term)
			subtitle := ""
			for i, item := range matched {
				if i > 0 {
					subtitle += ", "
				}
				subtitle += fmt.Sprintf("%s (%d)", item.Name(), item.Stock())
			}
			res.Add(flow.Result{
				Title:    s.Name(),
				Subtitle: subtitle,
				Action:   flow.ChangeQuery(c.query(alias, "items", s.UID())),
			})
		}

	default:
		res.Add(flow.Result{
			Title:    "Unknown search mode",
			Subtitle: `Must be "shop", "item", or "shops-by-item"`,
		})
	}
	return nil
}
