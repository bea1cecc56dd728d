// Package levels detects local support and resistance levels in a price
// series with a symmetric sliding window comparison.
package levels

import "tradedesk/internal/model"

// DefaultWindow is the number of bars compared on each side of a candidate.
const DefaultWindow = 5

// Detect scans the bars for strict local extrema. A bar at index i is a
// support when its low is strictly below the lows of the w bars before and
// after it, and a resistance under the mirrored rule on highs. Plateaus
// (equal neighbors) are never flagged. The same index may yield both a
// support and a resistance; the support is emitted first.
//
// Series shorter than 2w+1 produce an empty result.
func Detect(bars []model.Bar, window int) []model.Level {
	if window < 1 {
		window = DefaultWindow
	}

	var out []model.Level
	for i := window; i < len(bars)-window; i++ {
		if isExtreme(bars, i, window, lower) {
			out = append(out, model.Level{TS: bars[i].TS, Price: bars[i].Low, Kind: model.LevelSupport})
		}
		if isExtreme(bars, i, window, higher) {
			out = append(out, model.Level{TS: bars[i].TS, Price: bars[i].High, Kind: model.LevelResistance})
		}
	}
	return out
}

func lower(b model.Bar, other model.Bar) bool  { return b.Low < other.Low }
func higher(b model.Bar, other model.Bar) bool { return b.High > other.High }

func isExtreme(bars []model.Bar, i, window int, beats func(model.Bar, model.Bar) bool) bool {
	for k := 1; k <= window; k++ {
		if !beats(bars[i], bars[i-k]) || !beats(bars[i], bars[i+k]) {
			return false
		}
	}
	return true
}
