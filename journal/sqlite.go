package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the ledger store. One row per trade, keyed by the stable
// trade identity; upserts mirror the replace-on-conflict semantics of
// Merge.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

const tradeColumns = `trade_id, wallet, instrument, side, entry_price, exit_price,
	size, fees, funding_fees, leverage, margin_mode, status, source, opened_at, closed_at`

const upsertTradeSQL = `
	INSERT INTO trades
	(trade_id, wallet, instrument, side, entry_price, exit_price,
	 size, fees, funding_fees, leverage, margin_mode, status, source, opened_at, closed_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(trade_id) DO UPDATE SET
		wallet = excluded.wallet,
		instrument = excluded.instrument,
		side = excluded.side,
		entry_price = excluded.entry_price,
		exit_price = excluded.exit_price,
		size = excluded.size,
		fees = excluded.fees,
		funding_fees = excluded.funding_fees,
		leverage = excluded.leverage,
		margin_mode = excluded.margin_mode,
		status = excluded.status,
		source = excluded.source,
		opened_at = excluded.opened_at,
		closed_at = excluded.closed_at`

func tradeArgs(t Trade) []any {
	// Open trades have no exit yet; both columns stay NULL until the
	// round trip completes.
	var exitPrice, closedAt any
	if t.Status != Open {
		exitPrice = t.ExitPrice
	}
	if !t.ClosedAt.IsZero() {
		closedAt = t.ClosedAt
	}
	return []any{
		t.ID, t.Wallet, t.Instrument, t.Side.String(), t.EntryPrice, exitPrice,
		t.Size, t.Fees, t.FundingFees, t.Leverage, t.MarginMode.String(),
		t.Status.String(), t.Source.String(), t.OpenedAt, closedAt,
	}
}

// UpsertTrade writes a single trade, replacing any row with the same
// identity.
func (j *SQLite) UpsertTrade(t Trade) error {
	_, err := j.db.Exec(upsertTradeSQL, tradeArgs(t)...)
	return err
}

// ReplaceSynced atomically replaces a wallet's synced trades with the
// given merged ledger. Manual rows are left alone. Running inside one
// transaction means a failed pass leaves the ledger exactly as before.
func (j *SQLite) ReplaceSynced(wallet string, merged []Trade) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM trades WHERE wallet = ? AND source = 'synced'`, wallet); err != nil {
		return fmt.Errorf("clear synced trades: %w", err)
	}

	for _, t := range merged {
		if t.Source != Synced {
			continue
		}
		if _, err := tx.Exec(upsertTradeSQL, tradeArgs(t)...); err != nil {
			return fmt.Errorf("write trade %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
