// ledger/record.go
package ledger

import (
	"strconv"
	"strings"
	"time"
)

// Side is the direction of a trade. Directional exposure is carried entirely
// by Side; Quantity is always positive.
type Side string

const (
	SideLong  Side = "Long"
	SideShort Side = "Short"
)

// Status is derived from PnL. A flat trade (PnL == 0) counts as a Loss; the
// boundary is fixed here so every aggregate applies the same rule.
type Status string

const (
	StatusWin  Status = "Win"
	StatusLoss Status = "Loss"
)

// Common mistake labels. Mistake is free text, these are just the values the
// entry form offers.
const (
	MistakeNone          = "None"
	MistakeFOMO          = "FOMO"
	MistakeEarlyExit     = "EarlyExit"
	MistakeRevenge       = "Revenge"
	MistakeLateEntry     = "LateEntry"
	MistakeOverleveraged = "Overleveraged"
)

// Source tags where a record came from. Records from different sources are
// merged append-only, never overwritten.
type Source string

const (
	SourceManual Source = "manual"
	SourceCSV    Source = "csv"
	SourceRemote Source = "remote"
)

// TradeRecord is one entry in the ledger.
//
// PnL and Status are derived from Entry, Exit, Quantity and Side and are
// recomputed on every write; they are never trusted from input. The one
// exception is an Incomplete record, which lacks the fields to derive PnL and
// carries a source-supplied value for display only.
type TradeRecord struct {
	ID         string
	Date       time.Time // calendar date, UTC midnight
	Ticker     string
	Side       Side
	Entry      float64
	Exit       float64
	Quantity   float64
	Setup      string
	Mistake    string
	Notes      string
	PnL        float64
	Status     Status
	Incomplete bool
	Source     Source
}

// Derive recomputes PnL and Status from the four pricing fields. It is a
// no-op for Incomplete records, which keep their fallback PnL.
func (r *TradeRecord) Derive() {
	if r.Incomplete {
		r.Status = statusOf(r.PnL)
		return
	}
	sign := 1.0
	if r.Side == SideShort {
		sign = -1.0
	}
	r.PnL = (r.Exit - r.Entry) * r.Quantity * sign
	r.Status = statusOf(r.PnL)
}

func statusOf(pnl float64) Status {
	if pnl > 0 {
		return StatusWin
	}
	return StatusLoss
}

// NormalizeTicker is the single place tickers are canonicalized, so grouping
// by ticker is consistent regardless of source.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ContentKey identifies a trade by its observable fields, ignoring ID and
// source. Used for optional de-duplication on re-import.
func (r TradeRecord) ContentKey() string {
	b := strings.Builder{}
	b.WriteString(r.Date.Format("2006-01-02"))
	b.WriteByte('|')
	b.WriteString(r.Ticker)
	b.WriteByte('|')
	b.WriteString(string(r.Side))
	b.WriteByte('|')
	b.WriteString(formatFloat(r.Entry))
	b.WriteByte('|')
	b.WriteString(formatFloat(r.Exit))
	b.WriteByte('|')
	b.WriteString(formatFloat(r.Quantity))
	return b.String()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
