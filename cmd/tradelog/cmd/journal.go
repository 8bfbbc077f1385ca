package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tradelog/journal"
	"tradelog/market"
	"tradelog/pkg/id"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query trade journal data",
	Long: `Query and display trade journal records from the SQLite ledger.

Subcommands:
  trade   - Get details of a specific trade by ID
  open    - List currently open positions for a wallet
  today   - List trades closed today
  day     - List trades closed on a specific day
  export  - Export a wallet's trades as CSV
  add     - Record a manual trade

Examples:
  tradelog journal trade 9f2c1a0e4b7d8c3a
  tradelog journal open main
  tradelog journal day 2026-08-15
  tradelog journal export main > trades.csv`,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var journalOpenCmd = &cobra.Command{
	Use:   "open <wallet-id>",
	Short: "List open positions for a wallet",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalOpen,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List trades closed today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades closed on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalExportCmd = &cobra.Command{
	Use:   "export <wallet-id>",
	Short: "Export a wallet's trades as CSV to stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalExport,
}

var journalAddCmd = &cobra.Command{
	Use:   "add <wallet-id> <instrument>",
	Short: "Record a manual trade",
	Long: `Record a trade by hand. Manual entries are never touched by sync;
they live alongside reconciled trades under their own ULID identity.`,
	Args: cobra.ExactArgs(2),
	RunE: runJournalAdd,
}

var journalDBPath string

var (
	addSide   string
	addEntry  float64
	addExit   float64
	addSize   float64
	addFees   float64
	addOpened string
	addClosed string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTradeCmd)
	journalCmd.AddCommand(journalOpenCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalExportCmd)
	journalCmd.AddCommand(journalAddCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./tradelog.sqlite", "path to SQLite ledger DB")

	journalAddCmd.Flags().StringVar(&addSide, "side", "long", "trade side (long|short)")
	journalAddCmd.Flags().Float64Var(&addEntry, "entry", 0, "entry price")
	journalAddCmd.Flags().Float64Var(&addExit, "exit", 0, "exit price (omit for open trade)")
	journalAddCmd.Flags().Float64Var(&addSize, "size", 0, "position size")
	journalAddCmd.Flags().Float64Var(&addFees, "fees", 0, "total fees")
	journalAddCmd.Flags().StringVar(&addOpened, "opened", "", "open time (RFC3339, default now)")
	journalAddCmd.Flags().StringVar(&addClosed, "closed", "", "close time (RFC3339)")
}

func openLedger() (*journal.SQLite, error) {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	j, err := openLedger()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetTrade(args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fmt.Println(journal.FormatTrade(rec))
	return nil
}

func runJournalOpen(cmd *cobra.Command, args []string) error {
	j, err := openLedger()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListOpen(args[0])
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Println(journal.FormatTrades(recs))
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	loc := time.Local
	return listDay(time.Now().In(loc).Format("2006-01-02"))
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	return listDay(args[0])
}

func listDay(day string) error {
	j, err := openLedger()
	if err != nil {
		return err
	}
	defer j.Close()

	start, end, err := dayBounds(time.Local, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	recs, err := j.ListClosedBetween(start, end)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Println(journal.FormatTrades(recs))
	return nil
}

func runJournalExport(cmd *cobra.Command, args []string) error {
	j, err := openLedger()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListWalletTrades(args[0])
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	return journal.WriteCSV(os.Stdout, recs)
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	side, err := market.ParseTradeSide(addSide)
	if err != nil {
		return err
	}
	if addEntry <= 0 || addSize <= 0 {
		return fmt.Errorf("--entry and --size must be positive")
	}

	openedAt := time.Now().UTC()
	if addOpened != "" {
		if openedAt, err = time.Parse(time.RFC3339, addOpened); err != nil {
			return fmt.Errorf("parse --opened: %w", err)
		}
	}

	t := journal.Trade{
		ID:         id.New(),
		Wallet:     args[0],
		Instrument: args[1],
		Side:       side,
		EntryPrice: addEntry,
		Size:       addSize,
		Fees:       addFees,
		Status:     journal.Open,
		Source:     journal.Manual,
		OpenedAt:   openedAt,
	}

	if addExit > 0 {
		t.ExitPrice = addExit
		t.Status = journal.Closed
		t.ClosedAt = openedAt
		if addClosed != "" {
			if t.ClosedAt, err = time.Parse(time.RFC3339, addClosed); err != nil {
				return fmt.Errorf("parse --closed: %w", err)
			}
		}
	}

	j, err := openLedger()
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.UpsertTrade(t); err != nil {
		return fmt.Errorf("write trade: %w", err)
	}

	fmt.Println(t.ID)
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)
	return start, end, nil
}
