package reconcile

import (
	"math"
	"sort"
	"time"

	"tradelog/journal"
	"tradelog/market"
)

// DefaultEpsilon is the net-size tolerance below which a position is
// considered flat. Float accumulation over many partial fills never
// lands exactly on zero.
const DefaultEpsilon = 1e-6

// Aggregator reconstructs closed round-trip trades from a fill stream
// that carries no explicit trade boundary. Per instrument it runs a
// two-state machine: flat until a fill arrives, accumulating until the
// running net size returns to (approximately) zero, at which point the
// accumulated batch is one round trip.
type Aggregator struct {
	Wallet  string
	Cutoff  time.Time // closed trades ending before this are not emitted
	Epsilon float64   // zero means DefaultEpsilon
}

type aggState int

const (
	stateFlat aggState = iota
	stateAccumulating
)

// RoundTrips returns the closed trades reconstructed from fills, the
// open time of any trailing unclosed batch per instrument, and counts
// of skipped (unreconcilable) and cutoff-discarded candidates.
//
// A trailing batch with non-zero net size is a still-open position; it
// is never emitted here because only the live snapshot knows the
// position's leverage, margin mode, and funding.
func (a Aggregator) RoundTrips(fills []market.Fill) (trades []journal.Trade, openSince map[string]time.Time, skipped, discarded int) {
	byInstrument := make(map[string][]market.Fill)
	for _, f := range fills {
		byInstrument[f.Instrument] = append(byInstrument[f.Instrument], f)
	}

	openSince = make(map[string]time.Time)
	for instrument, group := range byInstrument {
		closed, since, skip, disc := a.roundTripsOne(instrument, group)
		trades = append(trades, closed...)
		if !since.IsZero() {
			openSince[instrument] = since
		}
		skipped += skip
		discarded += disc
	}

	sort.SliceStable(trades, func(i, j int) bool {
		if !trades[i].OpenedAt.Equal(trades[j].OpenedAt) {
			return trades[i].OpenedAt.Before(trades[j].OpenedAt)
		}
		return trades[i].ID < trades[j].ID
	})

	return trades, openSince, skipped, discarded
}

func (a Aggregator) roundTripsOne(instrument string, fills []market.Fill) (trades []journal.Trade, openSince time.Time, skipped, discarded int) {
	eps := a.Epsilon
	if eps == 0 {
		eps = DefaultEpsilon
	}

	// Stable sort: ties keep exchange delivery order.
	sort.SliceStable(fills, func(i, j int) bool {
		return fills[i].Time.Before(fills[j].Time)
	})

	state := stateFlat
	var batch []market.Fill
	var netSize float64

	for _, f := range fills {
		batch = append(batch, f)
		netSize += f.SignedSize()
		state = stateAccumulating

		if math.Abs(netSize) >= eps {
			continue
		}

		// Zero-crossing: the only accumulating -> flat transition,
		// and the only point a trade is emitted.
		t, ok := a.closeBatch(instrument, batch)
		switch {
		case !ok:
			skipped++
		case t.ClosedAt.Before(a.Cutoff):
			// Ancient history still advanced netSize above; it just
			// is not re-imported.
			discarded++
		default:
			trades = append(trades, t)
		}

		batch = nil
		netSize = 0
		state = stateFlat
	}

	if state == stateAccumulating {
		openSince = batch[0].Time
	}

	return trades, openSince, skipped, discarded
}

// closeBatch turns one flat-to-flat batch into a closed trade. The
// trade's side is defined by the first fill in the batch: the opening
// direction is the trade, whatever later flattened it is the exit.
// That is a policy, not a market law; see DESIGN.md.
func (a Aggregator) closeBatch(instrument string, batch []market.Fill) (journal.Trade, bool) {
	side := market.Long
	entryFillSide := market.Buy
	if batch[0].Side == market.Sell {
		side = market.Short
		entryFillSide = market.Sell
	}

	var entryVolume, entrySize, exitVolume, exitSize, fees float64
	for _, f := range batch {
		fees += f.Fee
		if f.Side == entryFillSide {
			entryVolume += f.Price * f.Size
			entrySize += f.Size
		} else {
			exitVolume += f.Price * f.Size
			exitSize += f.Size
		}
	}

	// A zero-size leg cannot produce a size-weighted average; skip the
	// candidate rather than divide by zero.
	if entrySize <= 0 || exitSize <= 0 {
		return journal.Trade{}, false
	}

	openedAt := batch[0].Time
	closedAt := batch[len(batch)-1].Time

	return journal.Trade{
		ID:         journal.ClosedTradeID(instrument, openedAt, closedAt, side),
		Wallet:     a.Wallet,
		Instrument: instrument,
		Side:       side,
		EntryPrice: entryVolume / entrySize,
		ExitPrice:  exitVolume / exitSize,
		Size:       entrySize,
		Fees:       fees,
		// Funding is only known from live snapshots, never from fills.
		FundingFees: 0,
		MarginMode:  market.Isolated,
		Status:      journal.Closed,
		Source:      journal.Synced,
		OpenedAt:    openedAt,
		ClosedAt:    closedAt,
	}, true
}
