package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradelog/market"
)

func longInput() LiquidationInput {
	return LiquidationInput{
		EntryPrice:            100,
		NotionalSize:          1000,
		InitialCollateral:     100,
		MaintenanceMarginRate: 0.01,
		MarginMode:            market.Isolated,
		Side:                  market.Long,
	}
}

func TestLiquidationLong(t *testing.T) {
	t.Parallel()

	res, err := Liquidation(longInput())
	require.NoError(t, err)

	// units = 10, eff = 100, liq = (1000-100)/(10*0.99)
	assert.InDelta(t, 90.909090, res.LiquidationPrice, 1e-5)
	assert.InDelta(t, 9.090909, res.DistancePct, 1e-5)
	assert.InDelta(t, 100.0, res.EffectiveCollateral, 1e-9)
}

func TestLiquidationShort(t *testing.T) {
	t.Parallel()

	in := longInput()
	in.Side = market.Short

	res, err := Liquidation(in)
	require.NoError(t, err)

	// liq = (1000+100)/(10*1.01)
	assert.InDelta(t, 108.910891, res.LiquidationPrice, 1e-5)
	assert.InDelta(t, 8.910891, res.DistancePct, 1e-5)
}

func TestLiquidationFeesReduceCollateral(t *testing.T) {
	t.Parallel()

	in := longInput()
	in.TradingFees = 5
	in.FundingFees = 5

	res, err := Liquidation(in)
	require.NoError(t, err)

	assert.InDelta(t, 90.0, res.EffectiveCollateral, 1e-9)
	// Less collateral, liquidation moves closer to entry.
	assert.Greater(t, res.LiquidationPrice, 90.909091)
}

func TestLiquidationFundingRebateIncreasesCollateral(t *testing.T) {
	t.Parallel()

	in := longInput()
	in.FundingFees = -10 // net received

	res, err := Liquidation(in)
	require.NoError(t, err)
	assert.InDelta(t, 110.0, res.EffectiveCollateral, 1e-9)
}

func TestLiquidationCrossUsesWalletEquity(t *testing.T) {
	t.Parallel()

	in := longInput()
	in.MarginMode = market.Cross
	in.WalletEquity = 500
	in.InitialCollateral = 1 // must be ignored in cross

	res, err := Liquidation(in)
	require.NoError(t, err)

	assert.InDelta(t, 500.0, res.EffectiveCollateral, 1e-9)
	// liq = (1000-500)/(10*0.99)
	assert.InDelta(t, 50.505050, res.LiquidationPrice, 1e-5)
}

func TestLiquidationClampedAtZero(t *testing.T) {
	t.Parallel()

	in := longInput()
	in.InitialCollateral = 2000 // more collateral than notional

	res, err := Liquidation(in)
	require.NoError(t, err)

	assert.Zero(t, res.LiquidationPrice)
	assert.InDelta(t, 100.0, res.DistancePct, 1e-9)
}

func TestLiquidationMonotonicityLong(t *testing.T) {
	t.Parallel()

	// More collateral always means a lower liquidation price for longs.
	prev := math.Inf(1)
	for _, collateral := range []float64{50, 100, 200, 400, 800} {
		in := longInput()
		in.InitialCollateral = collateral

		res, err := Liquidation(in)
		require.NoError(t, err)
		assert.Less(t, res.LiquidationPrice, prev,
			"collateral %.0f should lower the liquidation price", collateral)
		prev = res.LiquidationPrice
	}
}

func TestLiquidationMonotonicityShort(t *testing.T) {
	t.Parallel()

	prev := 0.0
	for _, collateral := range []float64{50, 100, 200, 400, 800} {
		in := longInput()
		in.Side = market.Short
		in.InitialCollateral = collateral

		res, err := Liquidation(in)
		require.NoError(t, err)
		assert.Greater(t, res.LiquidationPrice, prev,
			"collateral %.0f should raise the liquidation price", collateral)
		prev = res.LiquidationPrice
	}
}

func TestLiquidationInvalidInputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mod  func(*LiquidationInput)
	}{
		{"zero entry", func(in *LiquidationInput) { in.EntryPrice = 0 }},
		{"negative entry", func(in *LiquidationInput) { in.EntryPrice = -10 }},
		{"zero notional", func(in *LiquidationInput) { in.NotionalSize = 0 }},
		{"mmr at one", func(in *LiquidationInput) { in.MaintenanceMarginRate = 1 }},
		{"negative mmr", func(in *LiquidationInput) { in.MaintenanceMarginRate = -0.1 }},
		{"nan collateral", func(in *LiquidationInput) { in.InitialCollateral = math.NaN() }},
		{"inf fees", func(in *LiquidationInput) { in.TradingFees = math.Inf(1) }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := longInput()
			tt.mod(&in)

			_, err := Liquidation(in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestLiquidationNeverReturnsNaN(t *testing.T) {
	t.Parallel()

	res, err := Liquidation(longInput())
	require.NoError(t, err)
	assert.False(t, math.IsNaN(res.LiquidationPrice))
	assert.False(t, math.IsInf(res.DistancePct, 0))
}
