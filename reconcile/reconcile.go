package reconcile

import (
	"fmt"
	"time"

	"tradelog/journal"
	"tradelog/market"
)

// Options configures one reconciliation pass for one wallet.
type Options struct {
	Wallet  string
	Cutoff  time.Time // closed trades ending before this are not emitted
	Epsilon float64   // zero means DefaultEpsilon
	AsOf    time.Time // pass time; open-entry fallback timestamp
}

// Report counts what one pass did. Record-level problems are recovered
// here, not surfaced as errors.
type Report struct {
	DroppedFills     int
	DroppedPositions int
	Skipped          int // unreconcilable closed candidates (zero-size leg)
	Discarded        int // closed trades older than the cutoff
	Suppressed       int // closed candidates overridden by the live snapshot
	ClosedEmitted    int
	OpenEmitted      int
}

// Result is a pass's candidate trade set, ready for journal.Merge.
// Live names the instruments the snapshot reports open; after merging,
// open records for instruments outside this set are stale and must be
// retired (journal.RetireStaleOpen).
type Result struct {
	Candidates []journal.Trade
	Live       map[string]bool
	Report     Report
}

// Run executes one full reconciliation pass: normalize the raw fills
// and snapshot, reconstruct round trips, cross-check against the live
// positions. Pure with respect to the ledger; the caller merges and
// persists. Only a malformed wallet-level equity figure is an error,
// since it cannot be dropped record-by-record.
func Run(rawFills []RawFill, rawAccount RawAccount, opts Options) (Result, error) {
	equity, ok := parseFinite(rawAccount.Equity)
	if rawAccount.Equity != "" && !ok {
		return Result{}, fmt.Errorf("reconcile: bad account equity %q", rawAccount.Equity)
	}
	fills, droppedFills := NormalizeFills(rawFills)
	positions, droppedPositions := NormalizePositions(rawAccount.Positions)

	agg := Aggregator{Wallet: opts.Wallet, Cutoff: opts.Cutoff, Epsilon: opts.Epsilon}
	closed, openSince, skipped, discarded := agg.RoundTrips(fills)

	asOf := opts.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	check := CrossCheck{Wallet: opts.Wallet, Epsilon: opts.Epsilon}
	snapshot := market.AccountSnapshot{Equity: equity, Positions: positions}
	candidates, live, suppressed := check.Apply(closed, snapshot, openSince, asOf)

	report := Report{
		DroppedFills:     droppedFills,
		DroppedPositions: droppedPositions,
		Skipped:          skipped,
		Discarded:        discarded,
		Suppressed:       suppressed,
	}
	for _, c := range candidates {
		if c.Status == journal.Open {
			report.OpenEmitted++
		} else {
			report.ClosedEmitted++
		}
	}

	return Result{Candidates: candidates, Live: live, Report: report}, nil
}
