package csvio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphazella/zella/ledger"
)

func TestReadBasic(t *testing.T) {
	t.Parallel()

	in := strings.NewReader(`Date,Ticker,Type,Entry,Exit,Quantity,Setup,Mistake
2024-01-02,AAPL,Long,185.20,190.50,100,Breakout,None
2024-01-03,TSLA,Short,245.50,240.10,50,Mean Reversion,FOMO
`)

	rows, err := Read(in)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "AAPL", rows[0]["Ticker"])
	assert.Equal(t, "Long", rows[0]["Type"])
	assert.Equal(t, "FOMO", rows[1]["Mistake"])
}

func TestReadKeepsSourceHeaderNames(t *testing.T) {
	t.Parallel()

	// Aliasing is Normalize's job; the reader hands over whatever the file
	// called its columns.
	in := strings.NewReader(`date,symbol,side,entry,exit,qty,p&l
2024-01-02,aapl,long,100,110,10,100
`)

	rows, err := Read(in)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rec, err := ledger.Normalize(rows[0], ledger.SourceCSV)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", rec.Ticker)
	assert.InDelta(t, 100.0, rec.PnL, 1e-9)
}

func TestReadRaggedRowBecomesMissingFields(t *testing.T) {
	t.Parallel()

	in := strings.NewReader(`Date,Ticker,Type,Entry,Exit,Quantity
2024-01-02,AAPL,Long
2024-01-03,TSLA,Short,50,45,20
`)

	rows, err := Read(in)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// The short row surfaces as a per-row normalize failure, not a dead batch.
	e := ledger.NewEngine()
	res := e.Ingest(rows, ledger.SourceCSV)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Skipped)
}

func TestReadEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Read(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadHeaderOnly(t *testing.T) {
	t.Parallel()

	rows, err := Read(strings.NewReader("Date,Ticker,Type,Entry,Exit,Quantity\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
