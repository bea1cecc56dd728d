// Package portfolio projects the trade ledger into a position-sizing risk
// table for the dashboard's portfolio view.
package portfolio

import (
	"math"

	"tradedesk/internal/model"
)

// Defaults for the simulated portfolio.
const (
	DefaultCapital = 500.0
	DefaultRiskPct = 0.02
)

// Row is one line of the portfolio risk table.
type Row struct {
	Pair       string  `json:"pair"`
	Entry      float64 `json:"entry"`
	StopLoss   float64 `json:"stop_loss"`
	TakeProfit float64 `json:"take_profit"`
	Size       float64 `json:"size"`
	RiskReward float64 `json:"risk_reward"`
}

// Compute sizes every ledger entry against the given capital and per-trade
// risk percentage. Each position risks capital*riskPct; the position size is
// that risk amount divided by the entry-to-stop distance.
//
// Remaining capital subtracts each position's risk amount independently
// rather than compounding against prior depletion. That mirrors the
// dashboard's simplified model and is kept on purpose.
func Compute(entries []model.LedgerEntry, capital, riskPct float64) ([]Row, float64) {
	rows := make([]Row, 0, len(entries))
	totalRisked := 0.0

	for _, e := range entries {
		dist := math.Abs(e.Entry - e.StopLoss)
		if dist == 0 {
			// Degenerate entries never reach the ledger via the analyzer, but
			// guard anyway rather than emit +Inf.
			continue
		}
		riskAmount := capital * riskPct
		rows = append(rows, Row{
			Pair:       e.Pair,
			Entry:      e.Entry,
			StopLoss:   e.StopLoss,
			TakeProfit: e.TakeProfit,
			Size:       round2(riskAmount / dist),
			RiskReward: e.RiskReward,
		})
		totalRisked += riskAmount
	}

	return rows, capital - totalRisked
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
