// ledger/engine.go
package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alphazella/zella/pkg/id"
)

// Engine owns the canonical set of trade records and answers aggregate
// queries over them. It is the unit of truth for one journal: construct it at
// startup from a store, pass it explicitly to every handler, and save after
// mutations if durability is wanted.
//
// All mutation is synchronous and in-memory; the read queries are pure
// projections and safe to recompute on every call. Ledgers are small
// (hundreds to low thousands of records), nothing here is cached.
type Engine struct {
	records []TradeRecord // insertion order preserved
	index   map[string]int
	dedupe  bool
}

// NewEngine returns an empty engine.
func NewEngine() *Engine {
	return &Engine{
		index: make(map[string]int),
	}
}

// NewEngineFromRecords builds an engine from previously persisted records,
// typically a store.Load result. Derived fields are recomputed rather than
// trusted from storage.
func NewEngineFromRecords(recs []TradeRecord) *Engine {
	e := NewEngine()
	for _, r := range recs {
		if r.ID == "" {
			r.ID = id.New()
		}
		r.Ticker = NormalizeTicker(r.Ticker)
		r.Derive()
		e.append(r)
	}
	return e
}

// SetDedupe switches on content-key de-duplication for subsequent ingests.
// The default is off: each import is treated as a new fact, so importing the
// same CSV twice visibly duplicates it.
func (e *Engine) SetDedupe(on bool) {
	e.dedupe = on
}

// SkipReason reports one row rejected during ingest.
type SkipReason struct {
	Row    int    `json:"row"` // 1-based position in the batch
	Reason string `json:"reason"`
}

// IngestResult summarizes a batch import: "N imported, M skipped" plus the
// per-row skip reasons.
type IngestResult struct {
	Imported int          `json:"imported"`
	Skipped  int          `json:"skipped"`
	Reasons  []SkipReason `json:"reasons,omitempty"`
}

func (r IngestResult) String() string {
	return fmt.Sprintf("%d imported, %d skipped", r.Imported, r.Skipped)
}

// Ingest normalizes and appends a batch of raw rows. One malformed row never
// aborts the batch; failures are collected per row and reported in the
// result. Existing records, whatever their source, are never replaced.
func (e *Engine) Ingest(rows []RawRow, source Source) IngestResult {
	// The dedupe set is rebuilt per batch from live records, so a deleted
	// trade can be imported again.
	var seen map[string]bool
	if e.dedupe {
		seen = make(map[string]bool, len(e.records))
		for _, r := range e.records {
			seen[r.ContentKey()] = true
		}
	}

	var res IngestResult
	for i, row := range rows {
		rec, err := Normalize(row, source)
		if err != nil {
			res.Skipped++
			res.Reasons = append(res.Reasons, SkipReason{Row: i + 1, Reason: err.Error()})
			continue
		}
		if e.dedupe {
			key := rec.ContentKey()
			if seen[key] {
				res.Skipped++
				res.Reasons = append(res.Reasons, SkipReason{Row: i + 1, Reason: "duplicate of existing record"})
				continue
			}
			seen[key] = true
		}
		e.append(rec)
		res.Imported++
	}
	return res
}

// Add appends a single record from manual entry, holding it to the same
// rules Normalize enforces: a date, a ticker, and unless the record is
// flagged Incomplete, a valid side with positive entry and quantity. A
// negative quantity would silently flip the P&L sign, so it is rejected here
// rather than derived. The ticker is normalized and derived fields
// recomputed; an id is assigned if the caller did not set one. The stored
// record is returned.
func (e *Engine) Add(rec TradeRecord) (TradeRecord, error) {
	if err := validateRecord(rec); err != nil {
		return TradeRecord{}, err
	}
	if rec.ID == "" {
		rec.ID = id.New()
	}
	if rec.Source == "" {
		rec.Source = SourceManual
	}
	if rec.Mistake == "" {
		rec.Mistake = MistakeNone
	}
	rec.Ticker = NormalizeTicker(rec.Ticker)
	rec.Derive()
	e.append(rec)
	return rec, nil
}

func validateRecord(rec TradeRecord) error {
	if rec.Date.IsZero() {
		return malformed("date", "", "missing required field")
	}
	if NormalizeTicker(rec.Ticker) == "" {
		return malformed("ticker", "", "missing required field")
	}
	// Incomplete records carry a source-supplied P&L in place of the four
	// derivation fields; the numeric checks do not apply.
	if rec.Incomplete {
		return nil
	}
	if rec.Side != SideLong && rec.Side != SideShort {
		return malformed("side", string(rec.Side), "must be Long or Short")
	}
	if rec.Entry <= 0 {
		return malformed("entry", formatFloat(rec.Entry), "must be positive")
	}
	if rec.Quantity <= 0 {
		return malformed("quantity", formatFloat(rec.Quantity), "must be positive")
	}
	return nil
}

func (e *Engine) append(rec TradeRecord) {
	e.index[rec.ID] = len(e.records)
	e.records = append(e.records, rec)
}

// Get returns the record with the given id, or ErrNotFound.
func (e *Engine) Get(recordID string) (TradeRecord, error) {
	i, ok := e.index[recordID]
	if !ok {
		return TradeRecord{}, fmt.Errorf("trade %q: %w", recordID, ErrNotFound)
	}
	return e.records[i], nil
}

// Delete removes the record with the given id. A miss returns ErrNotFound and
// leaves the ledger untouched, so deleting twice is safe. Ids are never
// reused after deletion.
func (e *Engine) Delete(recordID string) error {
	i, ok := e.index[recordID]
	if !ok {
		return fmt.Errorf("trade %q: %w", recordID, ErrNotFound)
	}
	e.records = append(e.records[:i], e.records[i+1:]...)
	delete(e.index, recordID)
	for j := i; j < len(e.records); j++ {
		e.index[e.records[j].ID] = j
	}
	return nil
}

// Len reports the number of records in the ledger, incomplete ones included.
func (e *Engine) Len() int {
	return len(e.records)
}

// Records returns a copy of the ledger in insertion order.
func (e *Engine) Records() []TradeRecord {
	out := make([]TradeRecord, len(e.records))
	copy(out, e.records)
	return out
}

// complete returns the records that participate in aggregates: everything not
// flagged Incomplete. The exclusion is applied uniformly across Summary,
// EquityCurve, DailyPnL and GroupBy.
func (e *Engine) complete() []TradeRecord {
	out := make([]TradeRecord, 0, len(e.records))
	for _, r := range e.records {
		if !r.Incomplete {
			out = append(out, r)
		}
	}
	return out
}

// EquityPoint is one step of the cumulative P&L series.
type EquityPoint struct {
	Date       time.Time `json:"date"`
	Cumulative float64   `json:"cumulative"`
}

// EquityCurve returns the running P&L sum in date order. Same-date records
// keep their insertion order, so repeated runs on identical input produce an
// identical series.
func (e *Engine) EquityCurve() []EquityPoint {
	recs := e.complete()
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Date.Before(recs[j].Date)
	})

	points := make([]EquityPoint, 0, len(recs))
	var cum float64
	for _, r := range recs {
		cum += r.PnL
		points = append(points, EquityPoint{Date: r.Date, Cumulative: cum})
	}
	return points
}

// Tone classifies a day for calendar coloring. A day whose wins and losses
// cancel is break-even, not a loss.
type Tone string

const (
	ToneWin       Tone = "win"
	ToneLoss      Tone = "loss"
	ToneBreakEven Tone = "break-even"
)

// DailyTotal is the P&L rollup for one calendar day.
type DailyTotal struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
	Tone  Tone      `json:"tone"`
}

// DailyPnL groups by calendar date and sums P&L, in date order. Days with no
// trades are absent; the consuming calendar renders those blank.
func (e *Engine) DailyPnL() []DailyTotal {
	totals := make(map[time.Time]float64)
	for _, r := range e.complete() {
		totals[r.Date] += r.PnL
	}

	out := make([]DailyTotal, 0, len(totals))
	for date, total := range totals {
		tone := ToneBreakEven
		switch {
		case total > 0:
			tone = ToneWin
		case total < 0:
			tone = ToneLoss
		}
		out = append(out, DailyTotal{Date: date, Total: total, Tone: tone})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Dimension selects the grouping axis for GroupBy.
type Dimension string

const (
	DimTicker  Dimension = "ticker"
	DimSetup   Dimension = "setup"
	DimMistake Dimension = "mistake"
)

// ParseDimension accepts any case variant of the dimension names.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(strings.ToLower(strings.TrimSpace(s))) {
	case DimTicker:
		return DimTicker, nil
	case DimSetup:
		return DimSetup, nil
	case DimMistake:
		return DimMistake, nil
	default:
		return "", fmt.Errorf("unknown dimension %q (want ticker, setup or mistake)", s)
	}
}

// AggregateStats are the per-group numbers for one dimension value.
type AggregateStats struct {
	Sum      float64 `json:"sum"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	WinCount int     `json:"win_count"`
}

// GroupBy aggregates P&L along one dimension. Mistake grouping excludes
// records marked "None": the cost of mistakes must not be diluted by
// disciplined trades. That exclusion is part of the contract, not a display
// choice.
func (e *Engine) GroupBy(dim Dimension) map[string]AggregateStats {
	out := make(map[string]AggregateStats)
	for _, r := range e.complete() {
		var key string
		switch dim {
		case DimTicker:
			key = r.Ticker
		case DimSetup:
			key = r.Setup
		case DimMistake:
			if r.Mistake == MistakeNone || r.Mistake == "" {
				continue
			}
			key = r.Mistake
		default:
			continue
		}
		stats := out[key]
		stats.Sum += r.PnL
		stats.Count++
		if r.Status == StatusWin {
			stats.WinCount++
		}
		out[key] = stats
	}
	for key, stats := range out {
		stats.Mean = stats.Sum / float64(stats.Count)
		out[key] = stats
	}
	return out
}
