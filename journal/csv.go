// journal/csv.go
package journal

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{
	"trade_id", "wallet", "instrument", "side", "entry_price", "exit_price",
	"size", "fees", "funding_fees", "leverage", "margin_mode", "status",
	"source", "opened_at", "closed_at",
}

// WriteCSV writes trades to w with a header row.
func WriteCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range trades {
		closedAt := ""
		if !t.ClosedAt.IsZero() {
			closedAt = t.ClosedAt.Format(time.RFC3339)
		}
		rec := []string{
			t.ID,
			t.Wallet,
			t.Instrument,
			t.Side.String(),
			f(t.EntryPrice),
			f(t.ExitPrice),
			f(t.Size),
			f(t.Fees),
			f(t.FundingFees),
			f(t.Leverage),
			t.MarginMode.String(),
			t.Status.String(),
			t.Source.String(),
			t.OpenedAt.Format(time.RFC3339),
			closedAt,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
