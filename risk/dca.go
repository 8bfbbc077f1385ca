package risk

import "tradelog/market"

// DCAInput is a hypothetical add to an existing position: the current
// position plus one additional entry at a different price. Fees,
// funding, side and margin mode carry over from the current position.
type DCAInput struct {
	Position      LiquidationInput
	AddEntryPrice float64
	AddNotional   float64
	AddCollateral float64 // ignored in cross margin; equity is shared
}

type DCAResult struct {
	NewEntryPrice float64
	NewNotional   float64
	NewCollateral float64
	Liquidation   LiquidationResult
}

// ProjectDCA computes the merged entry price and the projected
// liquidation after the hypothetical add. The projection is withheld
// entirely unless both the current position and the addition are fully
// specified and valid; there is no partial result.
func ProjectDCA(in DCAInput) (DCAResult, error) {
	if in.Position.EntryPrice <= 0 || in.Position.NotionalSize <= 0 {
		return DCAResult{}, ErrInvalidInput
	}
	if in.AddEntryPrice <= 0 || in.AddNotional <= 0 {
		return DCAResult{}, ErrInvalidInput
	}
	if !finite(in.AddEntryPrice, in.AddNotional, in.AddCollateral) {
		return DCAResult{}, ErrInvalidInput
	}

	newNotional := in.Position.NotionalSize + in.AddNotional
	newUnits := in.Position.NotionalSize/in.Position.EntryPrice + in.AddNotional/in.AddEntryPrice
	newEntry := newNotional / newUnits

	newCollateral := in.Position.InitialCollateral
	if in.Position.MarginMode == market.Isolated {
		newCollateral += in.AddCollateral
	}

	merged := in.Position
	merged.EntryPrice = newEntry
	merged.NotionalSize = newNotional
	merged.InitialCollateral = newCollateral

	liq, err := Liquidation(merged)
	if err != nil {
		return DCAResult{}, err
	}

	return DCAResult{
		NewEntryPrice: newEntry,
		NewNotional:   newNotional,
		NewCollateral: newCollateral,
		Liquidation:   liq,
	}, nil
}
