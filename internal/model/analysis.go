// Package model defines the core data types shared across the analysis
// pipeline: price bars, indicator series, levels, trade setups and results.
//
// Indicator series use NaN for warm-up indices where the value is undefined;
// JSON output renders those as null so consumers never see NaN.
package model

import (
	"encoding/json"
	"math"
	"time"
)

// Alert is a momentum alert raised by the alert evaluator.
type Alert string

const (
	AlertRSIOverbought Alert = "RSI_OVERBOUGHT"
	AlertRSIOversold   Alert = "RSI_OVERSOLD"
	AlertMACDBullish   Alert = "MACD_BULLISH"
	AlertMACDBearish   Alert = "MACD_BEARISH"
)

// LevelKind distinguishes support from resistance levels.
type LevelKind string

const (
	LevelSupport    LevelKind = "support"
	LevelResistance LevelKind = "resistance"
)

// Level marks a detected local price extreme.
type Level struct {
	TS    time.Time `json:"ts"`
	Price float64   `json:"price"`
	Kind  LevelKind `json:"kind"`
}

// TradeSetup is a risk-managed trade plan derived from the latest close.
type TradeSetup struct {
	Symbol     string  `json:"symbol"`
	Entry      float64 `json:"entry"`
	StopLoss   float64 `json:"stop_loss"`
	TakeProfit float64 `json:"take_profit"`
	RiskReward float64 `json:"risk_reward"`
}

// IndicatorSet holds indicator series aligned 1:1 with a price series by
// index. NaN marks warm-up indices where the indicator is not yet defined.
type IndicatorSet struct {
	RSI        []float64
	MACD       []float64
	MACDSignal []float64
	SMA50      []float64
	SMA200     []float64
}

// LastRSI returns the most recent RSI value, or NaN for an empty series.
func (s IndicatorSet) LastRSI() float64 { return lastValue(s.RSI) }

// LastMACD returns the most recent MACD line and signal values.
func (s IndicatorSet) LastMACD() (line, signal float64) {
	return lastValue(s.MACD), lastValue(s.MACDSignal)
}

func lastValue(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return xs[len(xs)-1]
}

// MarshalJSON renders NaN warm-up values as null.
func (s IndicatorSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RSI        []*float64 `json:"rsi"`
		MACD       []*float64 `json:"macd"`
		MACDSignal []*float64 `json:"macd_signal"`
		SMA50      []*float64 `json:"sma_50"`
		SMA200     []*float64 `json:"sma_200"`
	}{
		RSI:        nullable(s.RSI),
		MACD:       nullable(s.MACD),
		MACDSignal: nullable(s.MACDSignal),
		SMA50:      nullable(s.SMA50),
		SMA200:     nullable(s.SMA200),
	})
}

func nullable(xs []float64) []*float64 {
	out := make([]*float64, len(xs))
	for i := range xs {
		if !math.IsNaN(xs[i]) {
			v := xs[i]
			out[i] = &v
		}
	}
	return out
}

// AnalysisResult is the immutable output of one analysis cycle.
type AnalysisResult struct {
	Symbol     string       `json:"symbol"`
	Interval   Interval     `json:"interval"`
	Series     PriceSeries  `json:"series"`
	Indicators IndicatorSet `json:"indicators"`
	Levels     []Level      `json:"levels"`
	Setup      TradeSetup   `json:"setup"`
	Alerts     []Alert      `json:"alerts"`
	ComputedAt time.Time    `json:"computed_at"`
}

// LedgerEntry is the trimmed projection of a trade setup kept in the ledger.
type LedgerEntry struct {
	Pair       string  `json:"pair"`
	Entry      float64 `json:"entry"`
	StopLoss   float64 `json:"stop_loss"`
	TakeProfit float64 `json:"take_profit"`
	RiskReward float64 `json:"risk_reward"`
}

// LedgerEntry projects the setup into its ledger form, with the entry price
// rounded to display precision like the stop and target already are.
func (t TradeSetup) LedgerEntry() LedgerEntry {
	return LedgerEntry{
		Pair:       t.Symbol,
		Entry:      math.Round(t.Entry*100) / 100,
		StopLoss:   t.StopLoss,
		TakeProfit: t.TakeProfit,
		RiskReward: t.RiskReward,
	}
}
