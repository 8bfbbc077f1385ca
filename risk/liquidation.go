package risk

import (
	"errors"
	"math"

	"tradelog/market"
)

// ErrInvalidInput means the calculator has no defined result for the
// given inputs. Callers get this instead of a NaN or Infinity.
var ErrInvalidInput = errors.New("risk: invalid input")

// LiquidationInput describes one position for margin arithmetic.
// FundingFees is signed: positive means net funding paid (reduces
// effective collateral), negative means a net rebate.
type LiquidationInput struct {
	EntryPrice            float64
	NotionalSize          float64
	InitialCollateral     float64
	TradingFees           float64
	FundingFees           float64
	MarginMode            market.MarginMode
	MaintenanceMarginRate float64 // fraction, e.g. 0.005
	Side                  market.TradeSide
	WalletEquity          float64 // used only in cross margin
}

type LiquidationResult struct {
	LiquidationPrice    float64
	DistancePct         float64
	EffectiveCollateral float64
}

// Liquidation computes the liquidation price and its distance from
// entry. Pure function, total over its documented domain: entry price
// and notional must be positive, the maintenance margin rate a
// fraction in [0, 1), all inputs finite.
func Liquidation(in LiquidationInput) (LiquidationResult, error) {
	if in.EntryPrice <= 0 || in.NotionalSize <= 0 {
		return LiquidationResult{}, ErrInvalidInput
	}
	if in.MaintenanceMarginRate < 0 || in.MaintenanceMarginRate >= 1 {
		return LiquidationResult{}, ErrInvalidInput
	}
	if !finite(in.EntryPrice, in.NotionalSize, in.InitialCollateral,
		in.TradingFees, in.FundingFees, in.MaintenanceMarginRate, in.WalletEquity) {
		return LiquidationResult{}, ErrInvalidInput
	}

	units := in.NotionalSize / in.EntryPrice

	collateral := in.InitialCollateral
	if in.MarginMode == market.Cross {
		collateral = in.WalletEquity
	}
	effective := collateral - in.TradingFees - in.FundingFees

	var liqPrice float64
	if in.Side == market.Long {
		liqPrice = (in.NotionalSize - effective) / (units * (1 - in.MaintenanceMarginRate))
	} else {
		liqPrice = (in.NotionalSize + effective) / (units * (1 + in.MaintenanceMarginRate))
	}
	if liqPrice < 0 {
		liqPrice = 0
	}

	var distancePct float64
	if in.Side == market.Long {
		distancePct = (in.EntryPrice - liqPrice) / in.EntryPrice * 100
	} else {
		distancePct = (liqPrice - in.EntryPrice) / in.EntryPrice * 100
	}

	if !finite(liqPrice, distancePct, effective) {
		return LiquidationResult{}, ErrInvalidInput
	}

	return LiquidationResult{
		LiquidationPrice:    liqPrice,
		DistancePct:         distancePct,
		EffectiveCollateral: effective,
	}, nil
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
