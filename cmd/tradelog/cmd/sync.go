package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tradelog/config"
	"tradelog/exchange"
	"tradelog/journal"
	"tradelog/wallet"
)

var syncCmd = &cobra.Command{
	Use:   "sync [wallet-id]",
	Short: "Reconcile exchange fills into the local ledger",
	Long: `Fetch fill history and the open-position snapshot from the exchange,
reconstruct round-trip trades, and merge them into the local journal.

With no argument every configured wallet is synced (concurrently).
Syncing is idempotent: running it twice on the same history leaves the
ledger unchanged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

var syncConfigPath string

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().StringVarP(&syncConfigPath, "config", "c", "./tradelog.yaml", "path to config file")
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(syncConfigPath)
	if err != nil {
		return err
	}

	store, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	client := exchange.NewClient(cfg.API.BaseURL, cfg.API.Token)
	syncer := wallet.NewSyncer(client, store, newLogger("sync"),
		cfg.Sync.CutoffDays, cfg.Sync.Epsilon)

	ctx := context.Background()

	if len(args) == 1 {
		_, err := syncer.Sync(ctx, args[0])
		return err
	}

	if len(cfg.Wallets) == 0 {
		return fmt.Errorf("no wallets configured")
	}
	ids := make([]string, 0, len(cfg.Wallets))
	for _, w := range cfg.Wallets {
		ids = append(ids, w.ID)
	}
	return syncer.SyncAll(ctx, ids)
}
