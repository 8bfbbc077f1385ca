package market

import "math"

// OpenPosition is the exchange's authoritative view of a currently
// open position. The sign of SignedSize encodes the side.
type OpenPosition struct {
	Instrument        string
	SignedSize        float64
	EntryPrice        float64
	Leverage          float64
	MarginMode        MarginMode
	CumulativeFunding float64
}

func (p OpenPosition) Side() TradeSide {
	if p.SignedSize < 0 {
		return Short
	}
	return Long
}

func (p OpenPosition) Size() float64 {
	return math.Abs(p.SignedSize)
}

// AccountSnapshot bundles a wallet's equity with its open positions,
// as returned by one snapshot fetch. At most one position per
// instrument.
type AccountSnapshot struct {
	Equity    float64
	Positions []OpenPosition
}

// Position returns the snapshot position for an instrument, if any.
func (a AccountSnapshot) Position(instrument string) (OpenPosition, bool) {
	for _, p := range a.Positions {
		if p.Instrument == instrument {
			return p, true
		}
	}
	return OpenPosition{}, false
}
