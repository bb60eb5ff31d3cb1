// ledger/metrics.go
package ledger

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// SummaryMetrics are the headline numbers for a ledger (or filtered subset).
//
// Zero-division rules, applied the same way on every call:
//   - WinRate is 0 on an empty ledger.
//   - AverageTrade is NaN on an empty ledger; callers render "no data".
//   - ProfitFactor is the raw win sum when there are no losing trades, and 0
//     when there are no winning trades either.
//   - SharpeLike uses the sample standard deviation and is 0 when fewer than
//     two records exist or the deviation is 0.
type SummaryMetrics struct {
	Trades       int     `json:"trades"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	NetPnL       float64 `json:"net_pnl"`
	WinRate      float64 `json:"win_rate"`
	AverageTrade float64 `json:"average_trade"`
	ProfitFactor float64 `json:"profit_factor"`
	SharpeLike   float64 `json:"sharpe_like"`
}

// Summary computes the headline metrics over all complete records. It is a
// pure projection: calling it twice on an unmutated ledger returns identical
// results.
func (e *Engine) Summary() SummaryMetrics {
	recs := e.complete()

	m := SummaryMetrics{Trades: len(recs), AverageTrade: math.NaN()}
	if len(recs) == 0 {
		return m
	}

	pnls := make([]float64, len(recs))
	var grossProfit, grossLoss float64
	for i, r := range recs {
		pnls[i] = r.PnL
		m.NetPnL += r.PnL
		if r.Status == StatusWin {
			m.Wins++
			grossProfit += r.PnL
		} else {
			m.Losses++
			grossLoss += -r.PnL
		}
	}

	m.WinRate = float64(m.Wins) / float64(m.Trades) * 100
	m.AverageTrade = stat.Mean(pnls, nil)
	m.ProfitFactor = profitFactor(grossProfit, grossLoss)
	m.SharpeLike = sharpeLike(pnls)
	return m
}

func profitFactor(grossProfit, grossLoss float64) float64 {
	switch {
	case grossProfit <= 0:
		return 0
	case grossLoss <= 0:
		return grossProfit
	default:
		return grossProfit / grossLoss
	}
}

// sharpeLike is mean over sample standard deviation of per-trade P&L. Not an
// annualized Sharpe ratio; it only needs to rank consistency.
func sharpeLike(pnls []float64) float64 {
	if len(pnls) < 2 {
		return 0
	}
	sd := stat.StdDev(pnls, nil)
	if sd == 0 || math.IsNaN(sd) {
		return 0
	}
	return stat.Mean(pnls, nil) / sd
}
