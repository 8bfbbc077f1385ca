// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	wallet TEXT NOT NULL,
	instrument TEXT NOT NULL,
	side TEXT NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL,
	size REAL NOT NULL,
	fees REAL NOT NULL DEFAULT 0,
	funding_fees REAL NOT NULL DEFAULT 0,
	leverage REAL NOT NULL DEFAULT 0,
	margin_mode TEXT NOT NULL,
	status TEXT NOT NULL,
	source TEXT NOT NULL,
	opened_at DATETIME NOT NULL,
	closed_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_trades_wallet ON trades(wallet);
CREATE INDEX IF NOT EXISTS idx_trades_closed_at ON trades(closed_at);
`
