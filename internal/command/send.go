package command

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/sync/errgroup"

	"kromer-flow-plugin/internal/flow"
	"kromer-flow-plugin/internal/kromer"
	"kromer-flow-plugin/pkg/format"
)

const maxSendAmount = 1_000_000

var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// parseAmount validates a user-entered amount: positive, at most two decimal
// places, bounded by maxSendAmount.
func parseAmount(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("amount cannot be empty")
	}
	if !amountPattern.MatchString(s) {
		return 0, fmt.Errorf("amount must be a valid number with max 2 decimal places")
	}
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number format")
	}
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be greater than 0")
	}
	if amount > maxSendAmount {
		return 0, fmt.Errorf("amount too large (max: 1,000,000 KRO)")
	}
	return amount, nil
}

type walletBalance struct {
	address string
	balance float64
	err     error
}

// fetchBalances looks up the balances of several wallets in parallel.
func fetchBalances(ctx context.Context, client kromer.Client, addresses []string) []walletBalance {
	balances := make([]walletBalance, len(addresses))

	g, gctx := errgroup.WithContext(ctx)
	for i, address := range addresses {
		i, address := i, address
		g.Go(func() error {
			record, err := client.GetAddress(gctx, address)
			if err != nil {
				balances[i] = walletBalance{address: address, err: err}
				return nil
			}
			balances[i] = walletBalance{address: address, balance: record.Balance}
			return nil
		})
	}
	_ = g.Wait()
	return balances
}

// NewSendCommand transfers funds between wallets, building up the argument
// list interactively and requiring an explicit confirm step.
func NewSendCommand(d Deps) *Command {
	c := &sendCommand{deps: d}
	return &Command{
		Name:        "send",
		Description: "Send Kromer from one wallet to another",
		Usage:       "send <from> <to> <amount> [confirm]",
		Aliases:     []string{"transfer"},
		Run:         c.run,
	}
}

type sendCommand struct {
	deps Deps
}

func (c *sendCommand) query(alias string, parts ...string) string {
	return format.Command(c.deps.Keyword, append([]string{alias}, parts...)...)
}

func (c *sendCommand) run(ctx context.Context, args []string, res *flow.Response, alias string) error {
	if len(args) == 0 {
		return c.pickSource(ctx, res, alias)
	}
	from := args[0]
	if !kromer.IsV2Address(from, c.deps.AddressPrefix) {
		res.Add(flow.Result{
			Title:    "Invalid Source Address",
			Subtitle: from + " is not a valid Kromer v2 address",
			Action:   flow.ChangeQuery(c.query(alias, "")),
		})
		return nil
	}

	if len(args) == 1 {
		return c.pickDestination(ctx, res, alias, from)
	}
	to := args[1]
	if !kromer.IsV2Address(to, c.deps.AddressPrefix) {
		res.Add(flow.Result{
			Title:    "Invalid Destination Address",
			Subtitle: to + " is not a valid Kromer v2 address",
			Action:   flow.ChangeQuery(c.query(alias, from)),
		})
		return nil
	}
	if from == to {
		res.Add(flow.Result{
			Title:    "Invalid Transaction",
			Subtitle: "Cannot send to the same address",
			Action:   flow.ChangeQuery(c.query(alias, from)),
		})
		return nil
	}

	if len(args) == 2 {
		return c.pickAmount(ctx, res, alias, from, to)
	}
	amount, err := parseAmount(args[2])
	if err != nil {
		res.Add(flow.Result{
			Title:    "Invalid Amount",
			Subtitle: err.Error(),
			Action:   flow.ChangeQuery(c.query(alias, from, to)),
		})
		return nil
	}

	if len(args) < 4 || args[3] != "confirm" {
		return c.confirm(ctx, res, alias, from, to, amount, args[2])
	}
	return c.execute(ctx, res, alias, from, to, amount)
}

func (c *sendCommand) pickSource(ctx context.Context, res *flow.Response, alias string) error {
	addresses, err := c.deps.Keys.List(ctx)
	if err != nil {
		return err
	}
	if len(addresses) == 0 {
		res.Add(flow.Result{
			Title:    "No stored wallets found",
			Subtitle: "Import a wallet first to send Kromer",
			Action:   flow.ChangeQuery(format.Command(c.deps.Keyword, "import", "")),
		})
		return nil
	}

	res.Add(flow.Result{
		Title:    iconSend + " Send Kromer",
		Subtitle: fmt.Sprintf("Select source wallet (%d available)", len(addresses)),
	})
	for _, wb := range fetchBalances(ctx, c.deps.Kromer, addresses) {
		res.Add(flow.Result{
			Title:    wb.address,
			Subtitle: "Balance: " + format.Balance(wb.balance),
			Action:   flow.ChangeQuery(c.query(alias, wb.address, "")),
		})
	}
	return nil
}

func (c *sendCommand) pickDestination(ctx context.Context, res *flow.Response, alias, from string) error {
	record, err := c.deps.Kromer.GetAddress(ctx, from)
	if err != nil {
		return err
	}
	res.Add(flow.Result{
		Title:    "Send from " + from,
		Subtitle: "Available balance: " + format.Balance(record.Balance),
	})
	if record.Balance <= 0 {
		res.Add(flow.Result{
			Title:    "Insufficient balance",
			Subtitle: "This wallet has no KRO to send",
			Action:   flow.ChangeQuery(c.query(alias, "")),
		})
		return nil
	}

	addresses, err := c.deps.Keys.List(ctx)
	if err != nil {
		return err
	}
	others := addresses[:0:0]
	for _, a := range addresses {
		if a != from {
			others = append(others, a)
		}
	}
	for _, wb := range fetchBalances(ctx, c.deps.Kromer, others) {
		res.Add(flow.Result{
			Title:    wb.address,
			Subtitle: "Balance: " + format.Balance(wb.balance) + " • Select to send to this address",
			Action:   flow.ChangeQuery(c.query(alias, from, wb.address, "")),
		})
	}
	return nil
}

func (c *sendCommand) pickAmount(ctx context.Context, res *flow.Response, alias, from, to string) error {
	record, err := c.deps.Kromer.GetAddress(ctx, from)
	if err != nil {
		return err
	}
	balance := record.Balance

	res.Add(flow.Result{
		Title:    from + " → " + to,
		Subtitle: "Available: " + format.Balance(balance) + " • Enter amount to send",
	})

	suggestions := []struct {
		amount float64
		label  string
	}{
		{min(1, balance), "1 KRO"},
		{min(10, balance), "10 KRO"},
		{min(100, balance), "100 KRO"},
		{balance, "All balance"},
	}
	for _, s := range suggestions {
		if s.amount < 0.01 || s.amount > balance {
			continue
		}
		res.Add(flow.Result{
			Title:    s.label,
			Subtitle: "Send " + format.Amount(s.amount) + " KRO",
			Action:   flow.ChangeQuery(c.query(alias, from, to, format.Amount(s.amount))),
		})
	}
	res.Add(flow.Result{
		Title:    "Custom amount",
		Subtitle: "Format: " + c.query(alias, from, to, format.Arg("amount", false)),
	})
	return nil
}

func (c *sendCommand) confirm(ctx context.Context, res *flow.Response, alias, from, to string, amount float64, amountStr string) error {
	record, err := c.deps.Kromer.GetAddress(ctx, from)
	if err != nil {
		return err
	}
	if record.Balance < amount {
		res.Add(flow.Result{
			Title:    "Insufficient Balance",
			Subtitle: "Available: " + format.Balance(record.Balance) + " • Requested: " + format.Amount(amount) + " KRO",
			Action:   flow.ChangeQuery(c.query(alias, from, to, "")),
		})
		return nil
	}

	remaining := record.Balance - amount
	res.Add(
		flow.Result{
			Title:    from + " → " + to,
			Subtitle: format.Balance(amount) + " → " + format.Balance(remaining) + " • Click to confirm",
			Action:   flow.ChangeQuery(c.query(alias, from, to, amountStr, "confirm")),
		},
		flow.Result{
			Title:    "Cancel",
			Subtitle: "Return to amount selection",
			Action:   flow.ChangeQuery(c.query(alias, from, to, "")),
		},
	)
	return nil
}

func (c *sendCommand) execute(ctx context.Context, res *flow.Response, alias, from, to string, amount float64) error {
	privateKey, err := c.deps.Keys.Load(ctx, from)
	if err != nil {
		return err
	}

	tx, err := c.deps.Kromer.Send(ctx, privateKey, to, amount, "Sent via Kromer Flow Plugin")
	if err != nil {
		res.Add(flow.Result{
			Title:    iconError + " Transaction Failed",
			Subtitle: err.Error(),
			Action:   flow.ChangeQuery(c.query(alias, from, to, format.Amount(amount))),
		})
		return nil
	}

	txURL := c.deps.Links.Transaction(tx.ID)
	res.Add(
		flow.Result{
			Title:    iconSuccess + " Transaction Successful",
			Subtitle: fmt.Sprintf("Sent %s KRO • TX ID: %d", format.Amount(amount), tx.ID),
			Action:   flow.OpenURL(txURL),
		},
		flow.Result{
			Title:    "View on Krawlet",
			Subtitle: "Click to open transaction in web explorer",
			Action:   flow.OpenURL(txURL),
		},
		flow.Result{
			Title:    "Send Another",
			Subtitle: "Start a new transaction",
			Action:   flow.ChangeQuery(c.query(alias, "")),
		},
	)
	return nil
}
