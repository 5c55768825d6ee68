package command

import (
	"context"

	"kromer-flow-plugin/internal/flow"
)

// NewHelpCommand lists every registered command with its usage.
func NewHelpCommand(m *Manager) *Command {
	return &Command{
		Name:        "help",
		Description: "List available commands",
		Usage:       "help",
		Aliases:     []string{"h", "?"},
		Run: func(ctx context.Context, args []string, res *flow.Response, alias string) error {
			for _, c := range m.Commands() {
				subtitle := c.Description
				if c.Usage != "" {
					subtitle = "Usage: " + m.keyword + " " + c.Usage
				}
				res.Add(flow.Result{
					Title:    c.Name,
					Subtitle: subtitle,
					Action:   flow.ChangeQuery(m.keyword + " " + c.Name + " "),
				})
			}
			return nil
		},
	}
}
