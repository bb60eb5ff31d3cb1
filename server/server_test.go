package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphazella/zella/ledger"
	"github.com/alphazella/zella/store"
)

func newTestServer(t *testing.T) (*Server, *ledger.Engine, *store.MemoryStore) {
	t.Helper()

	eng := ledger.NewEngine()
	st := store.NewMemory()
	srv := New(Config{
		Log:    zerolog.Nop(),
		Engine: eng,
		Store:  st,
		Port:   0,
	})
	return srv, eng, st
}

func doJSON(t *testing.T, srv *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	var out map[string]any
	if rr.Body.Len() > 0 && strings.Contains(rr.Header().Get("Content-Type"), "json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	}
	return rr, out
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv, _, _ := newTestServer(t)
	rr, body := doJSON(t, srv, http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestAddTradeAndSummary(t *testing.T) {
	t.Parallel()

	srv, eng, st := newTestServer(t)

	rr, body := doJSON(t, srv, http.MethodPost, "/api/trades", `{
		"date": "2024-01-02",
		"ticker": "aapl",
		"side": "long",
		"entry": "100",
		"exit": "110",
		"quantity": "10"
	}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "AAPL", body["ticker"])
	assert.InDelta(t, 100.0, body["pnl"].(float64), 1e-9)

	// Mutation was persisted through the store.
	saved, err := st.Load()
	require.NoError(t, err)
	assert.Len(t, saved, 1)
	assert.Equal(t, 1, eng.Len())

	rr, body = doJSON(t, srv, http.MethodGet, "/api/summary", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.InDelta(t, 100.0, body["net_pnl"].(float64), 1e-9)
	assert.InDelta(t, 100.0, body["win_rate"].(float64), 1e-9)
}

func TestAddTradeMalformedIs400(t *testing.T) {
	t.Parallel()

	srv, eng, _ := newTestServer(t)

	rr, body := doJSON(t, srv, http.MethodPost, "/api/trades", `{
		"date": "2024-01-02",
		"ticker": "AAPL",
		"side": "sideways",
		"entry": "100",
		"exit": "110",
		"quantity": "10"
	}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, body["error"], "side")
	assert.Zero(t, eng.Len())
}

func TestSummaryEmptyLedgerHasNullAverage(t *testing.T) {
	t.Parallel()

	srv, _, _ := newTestServer(t)
	rr, body := doJSON(t, srv, http.MethodGet, "/api/summary", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, body["average_trade"])
	assert.EqualValues(t, 0, body["net_pnl"])
}

func TestDeleteTrade(t *testing.T) {
	t.Parallel()

	srv, eng, _ := newTestServer(t)
	rec, err := eng.Add(ledger.TradeRecord{
		Date: dayUTC(2024, 1, 2), Ticker: "AAPL", Side: ledger.SideLong,
		Entry: 100, Exit: 110, Quantity: 10,
	})
	require.NoError(t, err)

	rr, _ := doJSON(t, srv, http.MethodDelete, "/api/trades/"+rec.ID, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Zero(t, eng.Len())

	rr, body := doJSON(t, srv, http.MethodDelete, "/api/trades/"+rec.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, body["error"], "not found")
}

func TestImportCSV(t *testing.T) {
	t.Parallel()

	srv, eng, _ := newTestServer(t)

	csvBody := `Date,Ticker,Type,Entry,Exit,Quantity
2024-01-02,AAPL,Long,100,110,10
bad-date,TSLA,Short,50,45,20
2024-01-03,NVDA,Long,480,495,20
`
	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(csvBody))
	req.Header.Set("Content-Type", "text/csv")
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var res ledger.IngestResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Reasons, 1)
	assert.Equal(t, 2, res.Reasons[0].Row)
	assert.Equal(t, 2, eng.Len())
}

func TestGroupsEndpoint(t *testing.T) {
	t.Parallel()

	srv, eng, _ := newTestServer(t)
	eng.Add(ledger.TradeRecord{Date: dayUTC(2024, 1, 2), Ticker: "AAPL", Side: ledger.SideLong, Entry: 100, Exit: 110, Quantity: 1, Mistake: ledger.MistakeFOMO})
	eng.Add(ledger.TradeRecord{Date: dayUTC(2024, 1, 3), Ticker: "TSLA", Side: ledger.SideLong, Entry: 100, Exit: 90, Quantity: 1})

	rr, body := doJSON(t, srv, http.MethodGet, "/api/groups/mistake", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, body, 1)
	_, ok := body[ledger.MistakeFOMO]
	assert.True(t, ok)

	rr, _ = doJSON(t, srv, http.MethodGet, "/api/groups/bogus", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDailyEndpointBreakEven(t *testing.T) {
	t.Parallel()

	srv, eng, _ := newTestServer(t)
	eng.Add(ledger.TradeRecord{Date: dayUTC(2024, 1, 4), Ticker: "NVDA", Side: ledger.SideLong, Entry: 100, Exit: 105, Quantity: 1})
	eng.Add(ledger.TradeRecord{Date: dayUTC(2024, 1, 4), Ticker: "AMD", Side: ledger.SideLong, Entry: 100, Exit: 95, Quantity: 1})

	req := httptest.NewRequest(http.MethodGet, "/api/daily", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var days []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &days))
	require.Len(t, days, 1)
	assert.Equal(t, "2024-01-04", days[0]["date"])
	assert.EqualValues(t, 0, days[0]["total"])
	assert.Equal(t, "break-even", days[0]["tone"])
}

func TestExportEndpoint(t *testing.T) {
	t.Parallel()

	srv, eng, _ := newTestServer(t)
	eng.Add(ledger.TradeRecord{Date: dayUTC(2024, 1, 2), Ticker: "AAPL", Side: ledger.SideLong, Entry: 100, Exit: 110, Quantity: 10})

	req := httptest.NewRequest(http.MethodGet, "/api/export", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), "Date,Ticker,Type"))
	assert.Contains(t, rr.Body.String(), "AAPL")
}

// Every request gets its own goroutine from net/http, so writes must not
// race with each other or with reads. Run with -race.
func TestConcurrentWritesAndReads(t *testing.T) {
	t.Parallel()

	srv, eng, _ := newTestServer(t)

	const writers = 8
	codes := make([]int, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			payload := fmt.Sprintf(`{
				"date": "2024-01-%02d",
				"ticker": "AAPL",
				"side": "long",
				"entry": "100",
				"exit": "110",
				"quantity": "10"
			}`, i+2)
			req := httptest.NewRequest(http.MethodPost, "/api/trades", strings.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			srv.Router().ServeHTTP(rr, req)
			codes[i] = rr.Code
		}(i)

		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
			rr := httptest.NewRecorder()
			srv.Router().ServeHTTP(rr, req)
		}()
	}
	wg.Wait()

	for i, code := range codes {
		assert.Equal(t, http.StatusCreated, code, "writer %d", i)
	}
	assert.Equal(t, writers, eng.Len())
}

func dayUTC(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}
