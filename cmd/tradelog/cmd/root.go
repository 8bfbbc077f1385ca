package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradelog",
	Short: "A personal perpetual-futures trading journal",
	Long: `Tradelog keeps a local journal of your perp trading.

It provides tools for:
  - Syncing fill history from the exchange into round-trip trades
  - Keeping the ledger idempotent across repeated syncs
  - Browsing and exporting the trade journal
  - Margin and liquidation-price calculations
  - Projecting entry and liquidation after adding to a position`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the structured JSON logger used by commands that
// run reconciliation. Level comes from TRADELOG_LOG_LEVEL.
func newLogger(component string) zerolog.Logger {
	level := parseLogLevel(os.Getenv("TRADELOG_LOG_LEVEL"))

	return zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

func parseLogLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
