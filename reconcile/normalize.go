package reconcile

import (
	"math"
	"strconv"
	"time"

	"tradelog/market"
)

// Raw records are the exchange wire shapes: numeric fields arrive as
// decimal strings and nothing is trusted. Normalization is the strict
// parsing boundary; anything ambiguous is dropped, not coerced.

type RawFill struct {
	Instrument      string `json:"instrument"`
	Side            string `json:"side"`
	Price           string `json:"price"`
	Size            string `json:"size"`
	Fee             string `json:"fee"`
	TimestampMillis int64  `json:"timestamp_ms"`
}

type RawPosition struct {
	Instrument        string `json:"instrument"`
	SignedSize        string `json:"signed_size"`
	EntryPrice        string `json:"entry_price"`
	Leverage          string `json:"leverage"`
	MarginMode        string `json:"margin_mode"`
	CumulativeFunding string `json:"cumulative_funding"`
}

// RawAccount is one snapshot fetch: wallet equity plus open positions.
type RawAccount struct {
	Equity    string        `json:"equity"`
	Positions []RawPosition `json:"positions"`
}

// NormalizeFills validates and converts raw fill records. Records with
// a non-positive price or size, an unknown side, a negative fee, or a
// missing timestamp are dropped; the second return is the drop count.
func NormalizeFills(raw []RawFill) ([]market.Fill, int) {
	fills := make([]market.Fill, 0, len(raw))
	dropped := 0

	for _, r := range raw {
		f, ok := normalizeFill(r)
		if !ok {
			dropped++
			continue
		}
		fills = append(fills, f)
	}

	return fills, dropped
}

func normalizeFill(r RawFill) (market.Fill, bool) {
	if r.Instrument == "" || r.TimestampMillis <= 0 {
		return market.Fill{}, false
	}

	side, err := market.ParseSide(r.Side)
	if err != nil {
		return market.Fill{}, false
	}

	price, ok := parsePositive(r.Price)
	if !ok {
		return market.Fill{}, false
	}
	size, ok := parsePositive(r.Size)
	if !ok {
		return market.Fill{}, false
	}

	fee := 0.0
	if r.Fee != "" {
		fee, ok = parseFinite(r.Fee)
		if !ok || fee < 0 {
			return market.Fill{}, false
		}
	}

	return market.Fill{
		Instrument: r.Instrument,
		Side:       side,
		Price:      price,
		Size:       size,
		Fee:        fee,
		Time:       time.UnixMilli(r.TimestampMillis).UTC(),
	}, true
}

// NormalizePositions validates and converts raw snapshot positions.
// Flat positions (zero signed size) are skipped without counting as
// drops; malformed records are dropped and counted.
func NormalizePositions(raw []RawPosition) ([]market.OpenPosition, int) {
	positions := make([]market.OpenPosition, 0, len(raw))
	dropped := 0

	for _, r := range raw {
		p, ok := normalizePosition(r)
		if !ok {
			dropped++
			continue
		}
		if p.SignedSize == 0 {
			continue
		}
		positions = append(positions, p)
	}

	return positions, dropped
}

func normalizePosition(r RawPosition) (market.OpenPosition, bool) {
	if r.Instrument == "" {
		return market.OpenPosition{}, false
	}

	signedSize, ok := parseFinite(r.SignedSize)
	if !ok {
		return market.OpenPosition{}, false
	}
	entryPrice, ok := parsePositive(r.EntryPrice)
	if !ok {
		return market.OpenPosition{}, false
	}

	leverage := 0.0
	if r.Leverage != "" {
		if leverage, ok = parseFinite(r.Leverage); !ok || leverage < 0 {
			return market.OpenPosition{}, false
		}
	}

	mode, err := market.ParseMarginMode(r.MarginMode)
	if err != nil {
		return market.OpenPosition{}, false
	}

	funding := 0.0
	if r.CumulativeFunding != "" {
		if funding, ok = parseFinite(r.CumulativeFunding); !ok {
			return market.OpenPosition{}, false
		}
	}

	return market.OpenPosition{
		Instrument:        r.Instrument,
		SignedSize:        signedSize,
		EntryPrice:        entryPrice,
		Leverage:          leverage,
		MarginMode:        mode,
		CumulativeFunding: funding,
	}, true
}

func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parsePositive(s string) (float64, bool) {
	v, ok := parseFinite(s)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}
