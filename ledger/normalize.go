// ledger/normalize.go
package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/alphazella/zella/pkg/id"
)

// RawRow is one row from any source (manual form, CSV line, remote record),
// keyed by whatever column names the source used. Keys are matched
// case-insensitively against the alias table below.
type RawRow map[string]string

// Column aliases observed across imported CSVs. Matching is on the trimmed,
// lowercased header, so "P&L", "p&l" and "PnL" all land on the same field.
var columnAliases = map[string]string{
	"date":        "date",
	"ticker":      "ticker",
	"symbol":      "ticker",
	"type":        "side",
	"side":        "side",
	"direction":   "side",
	"entry":       "entry",
	"entry price": "entry",
	"entry_price": "entry",
	"exit":        "exit",
	"exit price":  "exit",
	"exit_price":  "exit",
	"quantity":    "quantity",
	"qty":         "quantity",
	"size":        "quantity",
	"units":       "quantity",
	"setup":       "setup",
	"strategy":    "setup",
	"mistake":     "mistake",
	"notes":       "notes",
	"note":        "notes",
	"p&l":         "pnl",
	"p/l":         "pnl",
	"pnl":         "pnl",
	"profit":      "pnl",
	"realized_pl": "pnl",
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Normalize turns a raw row into a typed TradeRecord with a fresh id. It
// mutates nothing; callers append the result via Engine.Ingest or Engine.Add.
//
// PnL and Status are always computed from entry/exit/quantity/side when those
// four are present, even if the source supplied its own P&L column. A
// source-supplied P&L is only used when one of the four is missing, and the
// record is then flagged Incomplete so aggregates can exclude it.
func Normalize(row RawRow, source Source) (TradeRecord, error) {
	fields := canonicalize(row)

	rec := TradeRecord{ID: id.New(), Source: source}

	dateStr, ok := fields["date"]
	if !ok || dateStr == "" {
		return TradeRecord{}, malformed("date", "", "missing required field")
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return TradeRecord{}, malformed("date", dateStr, "not a recognized date")
	}
	rec.Date = date

	rec.Ticker = NormalizeTicker(fields["ticker"])
	if rec.Ticker == "" {
		return TradeRecord{}, malformed("ticker", "", "missing required field")
	}

	rec.Setup = strings.TrimSpace(fields["setup"])
	rec.Mistake = strings.TrimSpace(fields["mistake"])
	if rec.Mistake == "" {
		rec.Mistake = MistakeNone
	}
	rec.Notes = strings.TrimSpace(fields["notes"])

	// Side is validated even on the fallback path: a present-but-bogus value
	// is an error, never a guess.
	sideStr, sideOK := fields["side"]
	if sideOK && strings.TrimSpace(sideStr) != "" {
		side, err := parseSide(sideStr)
		if err != nil {
			return TradeRecord{}, err
		}
		rec.Side = side
	}

	entry, entryOK, err := parsePrice(fields, "entry")
	if err != nil {
		return TradeRecord{}, err
	}
	exit, exitOK, err := parsePrice(fields, "exit")
	if err != nil {
		return TradeRecord{}, err
	}
	qty, qtyOK, err := parsePrice(fields, "quantity")
	if err != nil {
		return TradeRecord{}, err
	}

	if entryOK && exitOK && qtyOK && rec.Side != "" {
		if entry <= 0 {
			return TradeRecord{}, malformed("entry", fields["entry"], "must be positive")
		}
		if qty <= 0 {
			return TradeRecord{}, malformed("quantity", fields["quantity"], "must be positive")
		}
		rec.Entry, rec.Exit, rec.Quantity = entry, exit, qty
		rec.Derive()
		return rec, nil
	}

	// Fallback: not enough fields to derive P&L independently. Accept a
	// source-supplied value for display, flagged Incomplete.
	pnlStr, pnlOK := fields["pnl"]
	if !pnlOK || strings.TrimSpace(pnlStr) == "" {
		return TradeRecord{}, malformed("row", "", "missing entry/exit/quantity/side and no P&L fallback")
	}
	pnl, err := strconv.ParseFloat(strings.TrimSpace(pnlStr), 64)
	if err != nil {
		return TradeRecord{}, malformed("pnl", pnlStr, "not a number")
	}
	rec.Entry, rec.Exit, rec.Quantity = entry, exit, qty
	rec.PnL = pnl
	rec.Incomplete = true
	rec.Derive()
	return rec, nil
}

// canonicalize resolves source column names to canonical field names. Unknown
// columns are dropped rather than guessed at.
func canonicalize(row RawRow) map[string]string {
	out := make(map[string]string, len(row))
	for k, v := range row {
		key := strings.ToLower(strings.TrimSpace(k))
		if canon, ok := columnAliases[key]; ok {
			out[canon] = v
		}
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			// Truncate to the calendar date; all grouping is by day.
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, malformed("date", s, "not a recognized date")
}

func parseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long":
		return SideLong, nil
	case "short":
		return SideShort, nil
	default:
		return "", malformed("side", s, "must be Long or Short")
	}
}

// parsePrice reads an optional numeric field. Present-but-unparseable is an
// error; absent is reported via the bool so the caller can take the
// Incomplete fallback.
func parsePrice(fields map[string]string, name string) (float64, bool, error) {
	s, ok := fields[name]
	if !ok || strings.TrimSpace(s) == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false, malformed(name, s, "not a number")
	}
	return v, true, nil
}
