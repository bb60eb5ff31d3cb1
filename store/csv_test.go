package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphazella/zella/ledger"
)

func TestCSVStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewCSV(filepath.Join(t.TempDir(), "ledger.csv"))
	want := testRecords()

	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, len(want))

	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.True(t, got[i].Date.Equal(want[i].Date))
		assert.Equal(t, want[i].Ticker, got[i].Ticker)
		assert.Equal(t, want[i].Side, got[i].Side)
		assert.InDelta(t, want[i].Entry, got[i].Entry, 1e-6)
		assert.InDelta(t, want[i].PnL, got[i].PnL, 1e-6)
		assert.Equal(t, want[i].Status, got[i].Status)
		assert.Equal(t, want[i].Source, got[i].Source)
	}
}

func TestCSVStoreMissingFileIsEmptyLedger(t *testing.T) {
	t.Parallel()

	s := NewCSV(filepath.Join(t.TempDir(), "nope.csv"))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCSVStoreSaveReplaces(t *testing.T) {
	t.Parallel()

	s := NewCSV(filepath.Join(t.TempDir(), "ledger.csv"))
	recs := testRecords()

	require.NoError(t, s.Save(recs))
	require.NoError(t, s.Save(recs[:1]))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestCSVStoreIncompleteFlagRoundTrips(t *testing.T) {
	t.Parallel()

	s := NewCSV(filepath.Join(t.TempDir(), "ledger.csv"))
	rec := ledger.TradeRecord{
		ID:         "01HTEST0000000000000000003",
		Date:       time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
		Ticker:     "MYST",
		PnL:        -42.5,
		Status:     ledger.StatusLoss,
		Mistake:    ledger.MistakeNone,
		Incomplete: true,
		Source:     ledger.SourceRemote,
	}

	require.NoError(t, s.Save([]ledger.TradeRecord{rec}))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Incomplete)
	assert.InDelta(t, -42.5, got[0].PnL, 1e-6)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewMemory()

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	want := testRecords()
	require.NoError(t, s.Save(want))

	got, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Load hands out copies; mutating them must not touch the store.
	got[0].Ticker = "HACKED"
	again, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "AAPL", again[0].Ticker)
}
