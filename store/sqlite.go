// store/sqlite.go
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/alphazella/zella/ledger"
)

// SQLiteStore persists the ledger in a single trades table. Save replaces the
// table contents in one transaction; Load returns records in insertion
// (rowid) order so the engine's tie-breaks survive a restart.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load() ([]ledger.TradeRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, date, ticker, side, entry_price, exit_price, quantity, setup, mistake, notes, pnl, status, incomplete, source
		FROM trades
		ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.TradeRecord
	for rows.Next() {
		var rec ledger.TradeRecord
		var incomplete int
		if err := rows.Scan(
			&rec.ID,
			&rec.Date,
			&rec.Ticker,
			&rec.Side,
			&rec.Entry,
			&rec.Exit,
			&rec.Quantity,
			&rec.Setup,
			&rec.Mistake,
			&rec.Notes,
			&rec.PnL,
			&rec.Status,
			&incomplete,
			&rec.Source,
		); err != nil {
			return nil, err
		}
		rec.Incomplete = incomplete != 0
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) Save(recs []ledger.TradeRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trades`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO trades
		(id, date, ticker, side, entry_price, exit_price, quantity, setup, mistake, notes, pnl, status, incomplete, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range recs {
		incomplete := 0
		if r.Incomplete {
			incomplete = 1
		}
		if _, err := stmt.Exec(
			r.ID, r.Date, r.Ticker, string(r.Side),
			r.Entry, r.Exit, r.Quantity,
			r.Setup, r.Mistake, r.Notes,
			r.PnL, string(r.Status), incomplete, string(r.Source),
		); err != nil {
			return fmt.Errorf("insert trade %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
