// Package alerts classifies the latest indicator readings into momentum
// alerts.
package alerts

import (
	"math"

	"tradedesk/internal/model"
)

// RSI thresholds for the overbought/oversold classification.
const (
	RSIOverbought = 70.0
	RSIOversold   = 30.0
)

// Evaluate inspects the most recent RSI, MACD and MACD-signal values and
// returns zero, one or two alerts, RSI family first. Each family is
// evaluated independently and yields at most one alert. Undefined inputs
// (NaN, still inside the warm-up window) simply produce no alert for that
// family; Evaluate never fails.
func Evaluate(rsi, macd, signal float64) []model.Alert {
	var out []model.Alert

	if !math.IsNaN(rsi) {
		switch {
		case rsi > RSIOverbought:
			out = append(out, model.AlertRSIOverbought)
		case rsi < RSIOversold:
			out = append(out, model.AlertRSIOversold)
		}
	}

	if !math.IsNaN(macd) && !math.IsNaN(signal) {
		switch {
		case macd > signal:
			out = append(out, model.AlertMACDBullish)
		case macd < signal:
			out = append(out, model.AlertMACDBearish)
		}
	}

	return out
}

// Message renders an alert as the human-facing dashboard string.
func Message(a model.Alert) string {
	switch a {
	case model.AlertRSIOverbought:
		return "RSI overbought (>70)"
	case model.AlertRSIOversold:
		return "RSI oversold (<30)"
	case model.AlertMACDBullish:
		return "MACD bullish"
	case model.AlertMACDBearish:
		return "MACD bearish"
	}
	return string(a)
}

// Messages renders a list of alerts, with a placeholder when empty.
func Messages(as []model.Alert) []string {
	if len(as) == 0 {
		return []string{"No alerts detected."}
	}
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = Message(a)
	}
	return out
}
