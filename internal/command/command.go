package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"kromer-flow-plugin/internal/flow"
	"kromer-flow-plugin/internal/keystore"
	"kromer-flow-plugin/internal/kromer"
	"kromer-flow-plugin/internal/repository"
	"kromer-flow-plugin/internal/shops"
)

// Result icons, prefixed onto titles.
const (
	iconSuccess = "✅"
	iconError   = "❌"
	iconWarn    = "⚠️"
	iconDelete  = "🗑️"
	iconAlias   = "🏷️"
	iconImport  = "🔑"
	iconSend    = "💸"
	iconBalance = "💰"
	iconName    = "📛"
)

// RunFunc executes a command against already-tokenized arguments. alias is
// the literal word the user typed to invoke the command.
type RunFunc func(ctx context.Context, args []string, res *flow.Response, alias string) error

// Command is one launcher command with its metadata.
type Command struct {
	Name        string
	Description string
	Usage       string
	Aliases     []string
	Run         RunFunc
}

// Matches reports whether name invokes this command.
func (c *Command) Matches(name string) bool {
	if c.Name == name {
		return true
	}
	for _, a := range c.Aliases {
		if a == name {
			return true
		}
	}
	return false
}

// Deps bundles the collaborators the commands format results from. The
// commands only shape output; all domain behavior lives behind these.
type Deps struct {
	Keyword       string
	Registry      *shops.Registry
	Links         shops.Links
	Kromer        kromer.Client
	Keys          *keystore.Store
	Aliases       repository.AliasRepository
	AddressPrefix string
}

// Manager routes a raw query to the matching command.
type Manager struct {
	keyword  string
	commands []*Command
	log      *logrus.Entry
}

// NewManager creates an empty command manager.
func NewManager(keyword string) *Manager {
	return &Manager{
		keyword: keyword,
		log:     logrus.WithField("component", "command-manager"),
	}
}

// Register adds commands to the routing table.
func (m *Manager) Register(commands ...*Command) {
	m.commands = append(m.commands, commands...)
}

// Commands returns the registered commands in registration order.
func (m *Manager) Commands() []*Command {
	return m.commands
}

// Dispatch runs the command named by the query's first word and collects its
// results. Command failures and panics render as result rows; the process
// never dies on a bad query.
func (m *Manager) Dispatch(ctx context.Context, rawQuery string) (res *flow.Response) {
	res = &flow.Response{}

	defer func() {
		if r := recover(); r != nil {
			m.log.WithField("panic", r).Error("command panicked")
			res.Add(flow.Result{
				Title:    iconError + " Error while running command",
				Subtitle: fmt.Sprint(r),
			})
		}
	}()

	fields := strings.Fields(rawQuery)
	if len(fields) == 0 {
		m.overview(res)
		return res
	}

	name, args := fields[0], fields[1:]
	cmd := m.find(name)
	if cmd == nil {
		res.Add(flow.Result{
			Title:    "Unknown command: " + name,
			Subtitle: fmt.Sprintf("Type %q for a list of commands", m.keyword+" help"),
		})
		return res
	}

	if err := cmd.Run(ctx, args, res, name); err != nil {
		m.log.WithError(err).WithField("command", cmd.Name).Warn("command failed")
		res.Add(flow.Result{
			Title:    iconError + " Error while running command",
			Subtitle: err.Error(),
		})
	}
	return res
}

func (m *Manager) find(name string) *Command {
	for _, c := range m.commands {
		if c.Matches(name) {
			return c
		}
	}
	return nil
}

func (m *Manager) overview(res *flow.Response) {
	for _, c := range m.commands {
		res.Add(flow.Result{
			Title:    c.Name,
			Subtitle: c.Description,
			Action:   flow.ChangeQuery(m.keyword + " " + c.Name + " "),
		})
	}
}
