package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTrade renders one ledger entry as a readable block.
func FormatTrade(t Trade) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %s (%s)\n", t.Instrument, t.Side, t.Status, t.ID)
	fmt.Fprintf(&b, "  wallet:      %s\n", t.Wallet)
	fmt.Fprintf(&b, "  entry:       %.6f\n", t.EntryPrice)
	if t.Status == Closed {
		fmt.Fprintf(&b, "  exit:        %.6f\n", t.ExitPrice)
	}
	fmt.Fprintf(&b, "  size:        %.6f\n", t.Size)
	fmt.Fprintf(&b, "  fees:        %.6f\n", t.Fees)
	fmt.Fprintf(&b, "  funding:     %.6f\n", t.FundingFees)
	if t.Leverage > 0 {
		fmt.Fprintf(&b, "  leverage:    %.1fx %s\n", t.Leverage, t.MarginMode)
	}
	fmt.Fprintf(&b, "  opened:      %s\n", t.OpenedAt.Format(time.RFC3339))
	if !t.ClosedAt.IsZero() {
		fmt.Fprintf(&b, "  closed:      %s\n", t.ClosedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "  source:      %s\n", t.Source)

	return b.String()
}

// FormatTrades renders a one-line-per-trade listing.
func FormatTrades(trades []Trade) string {
	if len(trades) == 0 {
		return "no trades"
	}

	var b strings.Builder
	for _, t := range trades {
		closed := "-"
		exit := "-"
		if !t.ClosedAt.IsZero() {
			closed = t.ClosedAt.Format("2006-01-02 15:04")
			exit = fmt.Sprintf("%.4f", t.ExitPrice)
		}
		fmt.Fprintf(&b, "%-16s %-12s %-5s %-6s %10.4f %10s %10.4f  %s\n",
			t.ID, t.Instrument, t.Side, t.Status, t.EntryPrice, exit, t.Size, closed)
	}
	return b.String()
}
