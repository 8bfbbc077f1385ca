package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tradelog/market"
	"tradelog/risk"
)

var liqCmd = &cobra.Command{
	Use:   "liq",
	Short: "Compute liquidation price for a position",
	Long: `Compute the liquidation price, its distance from entry and the
effective collateral for a position described by flags.

Example:
  tradelog liq --side long --entry 30000 --notional 3000 \
      --collateral 300 --fees 1.8 --mmr 0.005`,
	Args: cobra.NoArgs,
	RunE: runLiq,
}

var (
	liqSide       string
	liqMode       string
	liqEntry      float64
	liqNotional   float64
	liqCollateral float64
	liqFees       float64
	liqFunding    float64
	liqMMR        float64
	liqEquity     float64
)

func init() {
	rootCmd.AddCommand(liqCmd)
	addPositionFlags(liqCmd)
}

// addPositionFlags registers the flags describing the current
// position. The dca command shares them (and their backing vars).
func addPositionFlags(c *cobra.Command) {
	c.Flags().StringVar(&liqSide, "side", "long", "position side (long|short)")
	c.Flags().StringVar(&liqMode, "mode", "isolated", "margin mode (isolated|cross)")
	c.Flags().Float64Var(&liqEntry, "entry", 0, "entry price")
	c.Flags().Float64Var(&liqNotional, "notional", 0, "notional position size")
	c.Flags().Float64Var(&liqCollateral, "collateral", 0, "initial collateral (isolated)")
	c.Flags().Float64Var(&liqFees, "fees", 0, "trading fees")
	c.Flags().Float64Var(&liqFunding, "funding", 0, "funding fees (negative = rebate)")
	c.Flags().Float64Var(&liqMMR, "mmr", 0.005, "maintenance margin rate (fraction)")
	c.Flags().Float64Var(&liqEquity, "equity", 0, "wallet equity (cross)")
}

func liquidationInput() (risk.LiquidationInput, error) {
	side, err := market.ParseTradeSide(liqSide)
	if err != nil {
		return risk.LiquidationInput{}, err
	}
	mode, err := market.ParseMarginMode(liqMode)
	if err != nil {
		return risk.LiquidationInput{}, err
	}

	return risk.LiquidationInput{
		EntryPrice:            liqEntry,
		NotionalSize:          liqNotional,
		InitialCollateral:     liqCollateral,
		TradingFees:           liqFees,
		FundingFees:           liqFunding,
		MarginMode:            mode,
		MaintenanceMarginRate: liqMMR,
		Side:                  side,
		WalletEquity:          liqEquity,
	}, nil
}

func runLiq(cmd *cobra.Command, args []string) error {
	in, err := liquidationInput()
	if err != nil {
		return err
	}

	res, err := risk.Liquidation(in)
	if err != nil {
		return fmt.Errorf("no result: %w", err)
	}

	fmt.Printf("liquidation price:    %.6f\n", res.LiquidationPrice)
	fmt.Printf("distance from entry:  %.2f%%\n", res.DistancePct)
	fmt.Printf("effective collateral: %.6f\n", res.EffectiveCollateral)
	return nil
}
