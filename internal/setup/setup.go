// Package setup derives risk-managed trade plans from a closing price.
package setup

import (
	"fmt"
	"math"

	"tradedesk/internal/model"
)

// Fixed percentage bands. Policy constants, not derived from volatility.
const (
	DefaultStopFraction   = 0.02
	DefaultTargetFraction = 0.03
)

// Calc builds a trade setup from the latest close. The stop sits
// stopFrac below the entry and the target targetFrac above it; the
// risk/reward ratio is computed generically so the bands can change.
// Fails when the close is not a positive finite number or when the rounded
// stop collapses onto the entry.
func Calc(symbol string, close, stopFrac, targetFrac float64) (model.TradeSetup, error) {
	if math.IsNaN(close) || math.IsInf(close, 0) || close <= 0 {
		return model.TradeSetup{}, fmt.Errorf("entry price must be positive, got %v", close)
	}

	entry := close
	stop := round2(close * (1 - stopFrac))
	target := round2(close * (1 + targetFrac))
	if entry == stop {
		// Division-by-zero guard: a zero stop fraction (or rounding on a tiny
		// price) collapses the band.
		return model.TradeSetup{}, fmt.Errorf("degenerate setup: entry %.2f equals stop-loss", entry)
	}

	return model.TradeSetup{
		Symbol:     symbol,
		Entry:      entry,
		StopLoss:   stop,
		TakeProfit: target,
		RiskReward: round2(math.Abs(target-entry) / math.Abs(entry-stop)),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
