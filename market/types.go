package market

import "fmt"

// Side is the direction of a single fill as reported by the exchange.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseSide accepts the common exchange spellings.
func ParseSide(s string) (Side, error) {
	switch s {
	case "buy", "Buy", "BUY", "b", "B":
		return Buy, nil
	case "sell", "Sell", "SELL", "s", "S":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

// TradeSide is the direction of a round-trip trade. A trade's side is
// defined by the direction it was opened in, not the direction that
// flattened it.
type TradeSide int

const (
	Long TradeSide = iota
	Short
)

func (s TradeSide) String() string {
	switch s {
	case Long:
		return "long"
	case Short:
		return "short"
	default:
		return "unknown"
	}
}

func ParseTradeSide(s string) (TradeSide, error) {
	switch s {
	case "long", "Long", "LONG":
		return Long, nil
	case "short", "Short", "SHORT":
		return Short, nil
	default:
		return 0, fmt.Errorf("unknown trade side %q", s)
	}
}

// MarginMode selects which collateral backs a position: a fixed
// per-position amount (isolated) or the whole wallet equity (cross).
type MarginMode int

const (
	Isolated MarginMode = iota
	Cross
)

func (m MarginMode) String() string {
	switch m {
	case Isolated:
		return "isolated"
	case Cross:
		return "cross"
	default:
		return "unknown"
	}
}

func ParseMarginMode(s string) (MarginMode, error) {
	switch s {
	case "isolated", "Isolated", "ISOLATED":
		return Isolated, nil
	case "cross", "Cross", "CROSS", "crossed":
		return Cross, nil
	default:
		return 0, fmt.Errorf("unknown margin mode %q", s)
	}
}
