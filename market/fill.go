package market

import "time"

// Fill is one executed trade leg reported by the exchange: one side,
// one price, one size. Values are validated by the normalizer before
// they reach here; Price and Size are always positive.
type Fill struct {
	Instrument string
	Side       Side
	Price      float64
	Size       float64
	Fee        float64
	Time       time.Time
}

// SignedSize returns +Size for a buy, -Size for a sell.
func (f Fill) SignedSize() float64 {
	if f.Side == Sell {
		return -f.Size
	}
	return f.Size
}
