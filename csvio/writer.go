// csvio/writer.go
package csvio

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/alphazella/zella/ledger"
)

// TradeHeader is the column order of the full-ledger sheet. It matches the
// import format so an export can be re-imported as-is.
var TradeHeader = []string{"Date", "Ticker", "Type", "Entry", "Exit", "Quantity", "Setup", "Mistake", "Notes", "P&L", "Status"}

// WriteTrades emits the full ledger as one sheet, dates formatted
// YYYY-MM-DD, in insertion order.
func WriteTrades(w io.Writer, recs []ledger.TradeRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(TradeHeader); err != nil {
		return err
	}
	for _, r := range recs {
		err := cw.Write([]string{
			r.Date.Format("2006-01-02"),
			r.Ticker,
			string(r.Side),
			f(r.Entry),
			f(r.Exit),
			f(r.Quantity),
			r.Setup,
			r.Mistake,
			r.Notes,
			f(r.PnL),
			string(r.Status),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SummaryHeader is the column order of the ticker-grouped sheet.
var SummaryHeader = []string{"Ticker", "Trades", "Wins", "Net P&L", "Avg P&L"}

// WriteTickerSummary emits the second sheet: per-ticker aggregates, tickers
// in alphabetical order.
func WriteTickerSummary(w io.Writer, groups map[string]ledger.AggregateStats) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(SummaryHeader); err != nil {
		return err
	}

	tickers := make([]string, 0, len(groups))
	for t := range groups {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	for _, t := range tickers {
		g := groups[t]
		err := cw.Write([]string{
			t,
			strconv.Itoa(g.Count),
			strconv.Itoa(g.WinCount),
			f(g.Sum),
			f(g.Mean),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Six decimals keeps fractional crypto quantities intact on a re-import.
func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
