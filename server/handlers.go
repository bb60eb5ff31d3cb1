// server/handlers.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alphazella/zella/csvio"
	"github.com/alphazella/zella/ledger"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"trades": s.engine.Len(),
	})
}

// GET /api/trades
func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.respondJSON(w, http.StatusOK, tradesJSON(s.engine.Records()))
}

// tradeRequest is the manual-entry payload. It goes through the same
// normalization as an imported row, so validation rules cannot drift between
// the form and the CSV path.
type tradeRequest struct {
	Date     string `json:"date"`
	Ticker   string `json:"ticker"`
	Side     string `json:"side"`
	Entry    string `json:"entry"`
	Exit     string `json:"exit"`
	Quantity string `json:"quantity"`
	Setup    string `json:"setup"`
	Mistake  string `json:"mistake"`
	Notes    string `json:"notes"`
}

// POST /api/trades
func (s *Server) handleAddTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	rec, err := ledger.Normalize(ledger.RawRow{
		"date":     req.Date,
		"ticker":   req.Ticker,
		"side":     req.Side,
		"entry":    req.Entry,
		"exit":     req.Exit,
		"quantity": req.Quantity,
		"setup":    req.Setup,
		"mistake":  req.Mistake,
		"notes":    req.Notes,
	}, ledger.SourceManual)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err = s.engine.Add(rec)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.persist(); err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}

	s.log.Info().Str("id", rec.ID).Str("ticker", rec.Ticker).Msg("trade added")
	s.respondJSON(w, http.StatusCreated, tradeJSON(rec))
}

// DELETE /api/trades/{id}
func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.Delete(recordID); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, err)
			return
		}
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}

	if err := s.persist(); err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}

	s.log.Info().Str("id", recordID).Msg("trade deleted")
	s.respondJSON(w, http.StatusOK, map[string]string{"deleted": recordID})
}

// POST /api/import — request body is the CSV itself.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	rows, err := csvio.Read(r.Body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.engine.Ingest(rows, ledger.SourceCSV)
	if res.Imported > 0 {
		if err := s.persist(); err != nil {
			s.respondError(w, http.StatusInternalServerError, err)
			return
		}
	}

	s.log.Info().Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("csv import")
	s.respondJSON(w, http.StatusOK, res)
}

// GET /api/summary
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.engine.Summary()
	// NaN is not representable in JSON; an empty ledger reports average as null.
	out := map[string]any{
		"trades":        m.Trades,
		"wins":          m.Wins,
		"losses":        m.Losses,
		"net_pnl":       m.NetPnL,
		"win_rate":      m.WinRate,
		"profit_factor": m.ProfitFactor,
		"sharpe_like":   m.SharpeLike,
	}
	if m.Trades > 0 {
		out["average_trade"] = m.AverageTrade
	} else {
		out["average_trade"] = nil
	}
	s.respondJSON(w, http.StatusOK, out)
}

// GET /api/equity
func (s *Server) handleEquity(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points := s.engine.EquityCurve()
	out := make([]map[string]any, len(points))
	for i, p := range points {
		out[i] = map[string]any{
			"date":       p.Date.Format("2006-01-02"),
			"cumulative": p.Cumulative,
		}
	}
	s.respondJSON(w, http.StatusOK, out)
}

// GET /api/daily
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	days := s.engine.DailyPnL()
	out := make([]map[string]any, len(days))
	for i, d := range days {
		out[i] = map[string]any{
			"date":  d.Date.Format("2006-01-02"),
			"total": d.Total,
			"tone":  d.Tone,
		}
	}
	s.respondJSON(w, http.StatusOK, out)
}

// GET /api/groups/{dimension}
func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	dim, err := ledger.ParseDimension(chi.URLParam(r, "dimension"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	s.respondJSON(w, http.StatusOK, s.engine.GroupBy(dim))
}

// GET /api/export — full ledger as a CSV attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trades.csv"`)
	if err := csvio.WriteTrades(w, s.engine.Records()); err != nil {
		s.log.Error().Err(err).Msg("export trades")
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.respondJSON(w, status, map[string]string{"error": err.Error()})
}

func tradeJSON(r ledger.TradeRecord) map[string]any {
	return map[string]any{
		"id":         r.ID,
		"date":       r.Date.Format("2006-01-02"),
		"ticker":     r.Ticker,
		"side":       r.Side,
		"entry":      r.Entry,
		"exit":       r.Exit,
		"quantity":   r.Quantity,
		"setup":      r.Setup,
		"mistake":    r.Mistake,
		"notes":      r.Notes,
		"pnl":        r.PnL,
		"status":     r.Status,
		"incomplete": r.Incomplete,
		"source":     r.Source,
	}
}

func tradesJSON(recs []ledger.TradeRecord) []map[string]any {
	out := make([]map[string]any, len(recs))
	for i, r := range recs {
		out[i] = tradeJSON(r)
	}
	return out
}
