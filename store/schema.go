// store/schema.go
package store

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	date DATETIME NOT NULL,
	ticker TEXT NOT NULL,
	side TEXT NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	quantity REAL NOT NULL,
	setup TEXT NOT NULL DEFAULT '',
	mistake TEXT NOT NULL DEFAULT 'None',
	notes TEXT NOT NULL DEFAULT '',
	pnl REAL NOT NULL,
	status TEXT NOT NULL,
	incomplete INTEGER NOT NULL DEFAULT 0,
	source TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
CREATE INDEX IF NOT EXISTS idx_trades_ticker ON trades(ticker);
`
