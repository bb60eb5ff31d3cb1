package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryTwoWinners(t *testing.T) {
	t.Parallel()

	// Long 100->110 x10 and Short 50->45 x20 are both +100.
	e := newTestEngine(t)
	m := e.Summary()

	assert.Equal(t, 2, m.Trades)
	assert.Equal(t, 2, m.Wins)
	assert.Equal(t, 0, m.Losses)
	assert.InDelta(t, 200.0, m.NetPnL, 1e-9)
	assert.InDelta(t, 100.0, m.WinRate, 1e-9)
	assert.InDelta(t, 100.0, m.AverageTrade, 1e-9)

	// No losing trades: profit factor is the raw win sum.
	assert.InDelta(t, 200.0, m.ProfitFactor, 1e-9)

	// Identical P&Ls have zero deviation, so the ratio is defined as 0.
	assert.Zero(t, m.SharpeLike)
}

func TestSummaryEmptyLedger(t *testing.T) {
	t.Parallel()

	m := NewEngine().Summary()

	assert.Zero(t, m.Trades)
	assert.Zero(t, m.NetPnL)
	assert.Zero(t, m.WinRate)
	assert.Zero(t, m.ProfitFactor)
	assert.Zero(t, m.SharpeLike)
	assert.True(t, math.IsNaN(m.AverageTrade), "average trade is a no-data sentinel when empty")
}

func TestSummaryProfitFactorNoWinners(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	e.Add(TradeRecord{Date: day(2024, 1, 2), Ticker: "AAPL", Side: SideLong, Entry: 100, Exit: 90, Quantity: 1})
	e.Add(TradeRecord{Date: day(2024, 1, 3), Ticker: "TSLA", Side: SideLong, Entry: 100, Exit: 80, Quantity: 1})

	m := e.Summary()
	assert.Zero(t, m.ProfitFactor)
	assert.Zero(t, m.WinRate)
	assert.InDelta(t, -30.0, m.NetPnL, 1e-9)
}

func TestSummaryProfitFactorMixed(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	e.Add(TradeRecord{Date: day(2024, 1, 2), Ticker: "AAPL", Side: SideLong, Entry: 100, Exit: 130, Quantity: 1}) // +30
	e.Add(TradeRecord{Date: day(2024, 1, 3), Ticker: "TSLA", Side: SideLong, Entry: 100, Exit: 90, Quantity: 1})  // -10

	m := e.Summary()
	assert.InDelta(t, 3.0, m.ProfitFactor, 1e-9)
	assert.InDelta(t, 50.0, m.WinRate, 1e-9)
}

func TestSummarySharpeLike(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	e.Add(TradeRecord{Date: day(2024, 1, 2), Ticker: "AAPL", Side: SideLong, Entry: 100, Exit: 110, Quantity: 1}) // +10
	e.Add(TradeRecord{Date: day(2024, 1, 3), Ticker: "TSLA", Side: SideLong, Entry: 100, Exit: 90, Quantity: 1})  // -10

	// Mean 0 over sample stddev sqrt(200): exactly 0 here.
	m := e.Summary()
	assert.InDelta(t, 0.0, m.SharpeLike, 1e-9)

	e.Add(TradeRecord{Date: day(2024, 1, 4), Ticker: "NVDA", Side: SideLong, Entry: 100, Exit: 130, Quantity: 1}) // +30
	m = e.Summary()

	// mean = 10, sample stddev = 20.
	assert.InDelta(t, 0.5, m.SharpeLike, 1e-9)
}

func TestSummarySingleTradeSharpeZero(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	e.Add(TradeRecord{Date: day(2024, 1, 2), Ticker: "AAPL", Side: SideLong, Entry: 100, Exit: 110, Quantity: 1})

	assert.Zero(t, e.Summary().SharpeLike)
}

func TestSummaryIdempotent(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	first := e.Summary()
	second := e.Summary()

	require.Equal(t, first, second)
	assert.Equal(t, 2, e.Len(), "summary must not mutate the ledger")
}
