// journal/journal.go
package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"tradelog/market"
)

// Status is the lifecycle state of a ledger trade.
type Status int

const (
	Open Status = iota
	Closed
)

func (s Status) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case "open":
		return Open, nil
	case "closed":
		return Closed, nil
	default:
		return 0, fmt.Errorf("unknown status %q", s)
	}
}

// Source records who authored a ledger entry. Synced entries are owned
// by reconciliation and may be replaced on every pass; manual entries
// belong to the user and are never touched by a merge.
type Source int

const (
	Synced Source = iota
	Manual
)

func (s Source) String() string {
	if s == Manual {
		return "manual"
	}
	return "synced"
}

func ParseSource(s string) (Source, error) {
	switch s {
	case "synced":
		return Synced, nil
	case "manual":
		return Manual, nil
	default:
		return 0, fmt.Errorf("unknown source %q", s)
	}
}

// Trade is one ledger entry: a closed round trip reconstructed from
// fill history, the single open entry for a live position, or a
// manually authored record.
type Trade struct {
	ID          string // stable identity, see ClosedTradeID / ActiveTradeID
	Wallet      string
	Instrument  string
	Side        market.TradeSide
	EntryPrice  float64
	ExitPrice   float64 // meaningful only when Status == Closed
	Size        float64
	Fees        float64
	FundingFees float64
	Leverage    float64
	MarginMode  market.MarginMode
	Status      Status
	Source      Source
	OpenedAt    time.Time
	ClosedAt    time.Time // zero when Status == Open
}

// ClosedTradeID derives the identity of a reconstructed closed trade.
// The same batch always sorts to the same boundaries, so repeated
// reconciliation runs produce the same ID for the same economic event.
func ClosedTradeID(instrument string, openedAt, closedAt time.Time, side market.TradeSide) string {
	return hashID(fmt.Sprintf("%s|%d|%d|%s",
		instrument, openedAt.UnixMilli(), closedAt.UnixMilli(), side))
}

// ActiveTradeID derives the identity of the open-position entry for an
// instrument, so every reconciliation pass targets the same record
// instead of minting a new open entry each cycle.
func ActiveTradeID(instrument string) string {
	return hashID(instrument + "|active")
}

func hashID(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}
