package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tradelog/risk"
)

var dcaCmd = &cobra.Command{
	Use:   "dca",
	Short: "Project entry and liquidation after adding to a position",
	Long: `Compute the merged entry price and the projected liquidation price
after a hypothetical add to the position described by the liq flags.

Example:
  tradelog dca --side long --entry 30000 --notional 3000 \
      --collateral 300 --mmr 0.005 \
      --add-entry 27000 --add-notional 1500 --add-collateral 150`,
	Args: cobra.NoArgs,
	RunE: runDCA,
}

var (
	dcaAddEntry      float64
	dcaAddNotional   float64
	dcaAddCollateral float64
)

func init() {
	rootCmd.AddCommand(dcaCmd)

	// Current position shares the liq flag set.
	addPositionFlags(dcaCmd)

	dcaCmd.Flags().Float64Var(&dcaAddEntry, "add-entry", 0, "additional entry price")
	dcaCmd.Flags().Float64Var(&dcaAddNotional, "add-notional", 0, "additional notional size")
	dcaCmd.Flags().Float64Var(&dcaAddCollateral, "add-collateral", 0, "additional collateral (isolated)")
}

func runDCA(cmd *cobra.Command, args []string) error {
	pos, err := liquidationInput()
	if err != nil {
		return err
	}

	res, err := risk.ProjectDCA(risk.DCAInput{
		Position:      pos,
		AddEntryPrice: dcaAddEntry,
		AddNotional:   dcaAddNotional,
		AddCollateral: dcaAddCollateral,
	})
	if err != nil {
		return fmt.Errorf("no result: %w", err)
	}

	fmt.Printf("new entry price:      %.6f\n", res.NewEntryPrice)
	fmt.Printf("new notional:         %.6f\n", res.NewNotional)
	fmt.Printf("new collateral:       %.6f\n", res.NewCollateral)
	fmt.Printf("liquidation price:    %.6f\n", res.Liquidation.LiquidationPrice)
	fmt.Printf("distance from entry:  %.2f%%\n", res.Liquidation.DistancePct)
	return nil
}
