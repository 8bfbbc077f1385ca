package reconcile

import (
	"time"

	"tradelog/journal"
	"tradelog/market"
)

// CrossCheck reconciles the aggregator's output against the live
// open-position snapshot. The snapshot always wins: for every
// instrument it reports open, all closed candidates for that
// instrument are suppressed and a single open-status trade is emitted
// with the snapshot's authoritative entry price, leverage, margin mode
// and funding. History for the instrument re-emerges on the first pass
// after it flattens.
type CrossCheck struct {
	Wallet  string
	Epsilon float64
}

// Apply returns the surviving closed candidates plus one open trade
// per live position, the set of live instruments, and the number of
// suppressed closed candidates. openSince supplies the open time
// reconstructed from the trailing fill batch; asOf is used when the
// fills never saw the position open.
//
// The live set is what lets the caller retire a previously emitted
// open record once its instrument has flattened.
func (c CrossCheck) Apply(closed []journal.Trade, snapshot market.AccountSnapshot, openSince map[string]time.Time, asOf time.Time) (candidates []journal.Trade, live map[string]bool, suppressed int) {
	eps := c.Epsilon
	if eps == 0 {
		eps = DefaultEpsilon
	}

	live = make(map[string]bool)
	for _, p := range snapshot.Positions {
		if p.Size() >= eps {
			live[p.Instrument] = true
		}
	}

	for _, t := range closed {
		if live[t.Instrument] {
			suppressed++
			continue
		}
		candidates = append(candidates, t)
	}

	for _, p := range snapshot.Positions {
		if !live[p.Instrument] {
			continue
		}
		openedAt := openSince[p.Instrument]
		if openedAt.IsZero() {
			openedAt = asOf
		}

		candidates = append(candidates, journal.Trade{
			ID:          journal.ActiveTradeID(p.Instrument),
			Wallet:      c.Wallet,
			Instrument:  p.Instrument,
			Side:        p.Side(),
			EntryPrice:  p.EntryPrice,
			Size:        p.Size(),
			FundingFees: p.CumulativeFunding,
			Leverage:    p.Leverage,
			MarginMode:  p.MarginMode,
			Status:      journal.Open,
			Source:      journal.Synced,
			OpenedAt:    openedAt,
		})
	}

	return candidates, live, suppressed
}
