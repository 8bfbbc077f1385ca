package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradelog/market"
)

var base = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func closedTrade(instrument string, openMin, closeMin int, entry float64) Trade {
	openedAt := base.Add(time.Duration(openMin) * time.Minute)
	closedAt := base.Add(time.Duration(closeMin) * time.Minute)
	return Trade{
		ID:         ClosedTradeID(instrument, openedAt, closedAt, market.Long),
		Wallet:     "w1",
		Instrument: instrument,
		Side:       market.Long,
		EntryPrice: entry,
		ExitPrice:  entry + 10,
		Size:       1,
		Status:     Closed,
		Source:     Synced,
		OpenedAt:   openedAt,
		ClosedAt:   closedAt,
	}
}

func TestMergeInsertsNewTrades(t *testing.T) {
	t.Parallel()

	a := closedTrade("BTC-PERP", 0, 5, 100)
	b := closedTrade("ETH-PERP", 10, 15, 2000)

	merged := Merge([]Trade{a}, []Trade{b})

	require.Len(t, merged, 2)
	assert.Equal(t, a.ID, merged[0].ID)
	assert.Equal(t, b.ID, merged[1].ID)
}

func TestMergeReplacesOnConflict(t *testing.T) {
	t.Parallel()

	stale := closedTrade("BTC-PERP", 0, 5, 100)
	stale.Fees = 0

	refreshed := stale
	refreshed.Fees = 1.5

	merged := Merge([]Trade{stale}, []Trade{refreshed})

	require.Len(t, merged, 1)
	assert.InDelta(t, 1.5, merged[0].Fees, 1e-9)
}

func TestMergeNeverTouchesManualTrades(t *testing.T) {
	t.Parallel()

	manual := Trade{
		ID:         "01J3ZK2V8Q0X5N7F9DM6TCWYHB",
		Wallet:     "w1",
		Instrument: "BTC-PERP",
		Side:       market.Long,
		EntryPrice: 95,
		Size:       1,
		Status:     Open,
		Source:     Manual,
		OpenedAt:   base,
	}

	collision := manual
	collision.Source = Synced
	collision.EntryPrice = 200

	merged := Merge([]Trade{manual}, []Trade{collision, closedTrade("ETH-PERP", 1, 2, 50)})

	require.Len(t, merged, 2)
	for _, tr := range merged {
		if tr.ID == manual.ID {
			assert.Equal(t, Manual, tr.Source)
			assert.InDelta(t, 95.0, tr.EntryPrice, 1e-9)
		}
	}
}

func TestMergeIdempotent(t *testing.T) {
	t.Parallel()

	existing := []Trade{closedTrade("BTC-PERP", 0, 5, 100)}
	candidates := []Trade{
		closedTrade("BTC-PERP", 0, 5, 100),
		closedTrade("ETH-PERP", 10, 15, 2000),
	}

	once := Merge(existing, candidates)
	twice := Merge(once, candidates)

	assert.Equal(t, once, twice)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	a := closedTrade("BTC-PERP", 0, 5, 100)
	refreshed := a
	refreshed.Fees = 9

	existing := []Trade{a}
	Merge(existing, []Trade{refreshed})

	assert.InDelta(t, 0.0, existing[0].Fees, 1e-9)
}

func TestMergeOrdersByOpenTime(t *testing.T) {
	t.Parallel()

	late := closedTrade("BTC-PERP", 30, 35, 100)
	early := closedTrade("ETH-PERP", 0, 5, 2000)

	merged := Merge([]Trade{late}, []Trade{early})

	require.Len(t, merged, 2)
	assert.Equal(t, early.ID, merged[0].ID)
	assert.Equal(t, late.ID, merged[1].ID)
}

func TestRetireStaleOpenDropsFlattenedRecord(t *testing.T) {
	t.Parallel()

	staleOpen := Trade{
		ID:         ActiveTradeID("BTC-PERP"),
		Wallet:     "w1",
		Instrument: "BTC-PERP",
		Status:     Open,
		Source:     Synced,
		OpenedAt:   base,
	}
	manualOpen := Trade{
		ID:         "01J3ZK2V8Q0X5N7F9DM6TCWYHB",
		Wallet:     "w1",
		Instrument: "ETH-PERP",
		Status:     Open,
		Source:     Manual,
		OpenedAt:   base,
	}
	closed := closedTrade("BTC-PERP", 0, 5, 100)

	ledger := []Trade{staleOpen, manualOpen, closed}

	// BTC-PERP no longer live: its synced open record goes, the closed
	// round trip and the manual entry stay.
	out, retired := RetireStaleOpen(ledger, nil)
	assert.Equal(t, 1, retired)
	require.Len(t, out, 2)
	assert.Equal(t, manualOpen.ID, out[0].ID)
	assert.Equal(t, closed.ID, out[1].ID)

	// Still live: nothing retired.
	out, retired = RetireStaleOpen(ledger, map[string]bool{"BTC-PERP": true})
	assert.Zero(t, retired)
	assert.Len(t, out, 3)
}

func TestTradeIdentityDerivation(t *testing.T) {
	t.Parallel()

	openedAt := base
	closedAt := base.Add(time.Hour)

	sameA := ClosedTradeID("BTC-PERP", openedAt, closedAt, market.Long)
	sameB := ClosedTradeID("BTC-PERP", openedAt, closedAt, market.Long)
	otherSide := ClosedTradeID("BTC-PERP", openedAt, closedAt, market.Short)
	otherTime := ClosedTradeID("BTC-PERP", openedAt, closedAt.Add(time.Minute), market.Long)

	assert.Equal(t, sameA, sameB)
	assert.NotEqual(t, sameA, otherSide)
	assert.NotEqual(t, sameA, otherTime)

	assert.Equal(t, ActiveTradeID("BTC-PERP"), ActiveTradeID("BTC-PERP"))
	assert.NotEqual(t, ActiveTradeID("BTC-PERP"), ActiveTradeID("ETH-PERP"))
}
