package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

const dbTimeout = 5 * time.Second

// FormatAmount formats an amount with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

var trustColors = map[transaction.TrustState]lipgloss.Color{
	transaction.TrustConfirmed:   lipgloss.Color("46"),
	transaction.TrustPreselected: lipgloss.Color("226"),
	transaction.TrustMissing:     lipgloss.Color("196"),
}

// TrustLabel is the uncolored marker used inside tables, where ANSI styling
// would break column widths.
func TrustLabel(s transaction.TrustState) string {
	switch s {
	case transaction.TrustConfirmed:
		return "✔ confirmed"
	case transaction.TrustPreselected:
		return "? preselected"
	default:
		return "✖ missing"
	}
}

// TrustLegend renders the colored key for trust markers.
func TrustLegend() string {
	parts := make([]string, 0, len(trustColors))
	for _, s := range []transaction.TrustState{transaction.TrustConfirmed, transaction.TrustPreselected, transaction.TrustMissing} {
		parts = append(parts, lipgloss.NewStyle().Foreground(trustColors[s]).Render(TrustLabel(s)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts[0], "   ", parts[1], "   ", parts[2])
}

func errorStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(s)
}

func successStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(s)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
