// Package format holds user-facing text helpers shared by the commands.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Amount renders a currency amount with two decimals.
func Amount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Balance renders a KRO balance.
func Balance(v float64) string {
	return Amount(v) + " KRO"
}

// Command joins a keyword and arguments into a launcher query string.
func Command(keyword string, parts ...string) string {
	return strings.TrimRight(keyword+" "+strings.Join(parts, " "), " ")
}

// Arg renders a usage placeholder, bracketed when optional.
func Arg(name string, optional bool) string {
	if optional {
		return "[" + name + "]"
	}
	return "<" + name + ">"
}

// RelativeTime renders how long ago a moment was, in the largest sensible
// unit.
func RelativeTime(past time.Time) string {
	if past.IsZero() {
		return "unknown"
	}

	d := time.Since(past)
	seconds := int(d.Seconds())
	minutes := int(d.Minutes())
	hours := int(d.Hours())
	days := hours / 24

	switch {
	case seconds < 60:
		return fmt.Sprintf("%d seconds ago", seconds)
	case minutes < 60:
		return fmt.Sprintf("%d minutes ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	case days < 30:
		return fmt.Sprintf("%d days ago", days)
	case days < 365:
		return fmt.Sprintf("%d months ago", days/30)
	default:
		return fmt.Sprintf("%d years ago", days/365)
	}
}
