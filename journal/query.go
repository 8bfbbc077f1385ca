package journal

import (
	"database/sql"
	"fmt"
	"time"

	"tradelog/market"
)

func scanTrade(scan func(...any) error) (Trade, error) {
	var (
		t          Trade
		side       string
		marginMode string
		status     string
		source     string
		exitPrice  sql.NullFloat64
		closedAt   sql.NullTime
	)

	err := scan(
		&t.ID, &t.Wallet, &t.Instrument, &side, &t.EntryPrice, &exitPrice,
		&t.Size, &t.Fees, &t.FundingFees, &t.Leverage, &marginMode,
		&status, &source, &t.OpenedAt, &closedAt,
	)
	if err != nil {
		return Trade{}, err
	}

	if t.Side, err = market.ParseTradeSide(side); err != nil {
		return Trade{}, err
	}
	if t.MarginMode, err = market.ParseMarginMode(marginMode); err != nil {
		return Trade{}, err
	}
	if t.Status, err = ParseStatus(status); err != nil {
		return Trade{}, err
	}
	if t.Source, err = ParseSource(source); err != nil {
		return Trade{}, err
	}
	if exitPrice.Valid {
		t.ExitPrice = exitPrice.Float64
	}
	if closedAt.Valid {
		t.ClosedAt = closedAt.Time
	}

	return t, nil
}

// GetTrade returns a single ledger entry by identity.
func (j *SQLite) GetTrade(tradeID string) (Trade, error) {
	row := j.db.QueryRow(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE trade_id = ?`, tradeID)

	t, err := scanTrade(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return Trade{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return Trade{}, err
	}
	return t, nil
}

func (j *SQLite) queryTrades(query string, args ...any) ([]Trade, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		t, err := scanTrade(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListWalletTrades returns every ledger entry for a wallet ordered by
// open time. This is what the syncer feeds into Merge.
func (j *SQLite) ListWalletTrades(wallet string) ([]Trade, error) {
	return j.queryTrades(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE wallet = ?
		ORDER BY opened_at ASC, trade_id ASC`, wallet)
}

// ListOpen returns the wallet's open entries.
func (j *SQLite) ListOpen(wallet string) ([]Trade, error) {
	return j.queryTrades(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE wallet = ? AND status = 'open'
		ORDER BY instrument ASC`, wallet)
}

// ListClosedBetween returns trades whose close time is within [start, end).
func (j *SQLite) ListClosedBetween(start, end time.Time) ([]Trade, error) {
	return j.queryTrades(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE closed_at IS NOT NULL AND closed_at >= ? AND closed_at < ?
		ORDER BY closed_at ASC`, start, end)
}
