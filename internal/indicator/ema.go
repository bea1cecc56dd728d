package indicator

import "math"

// EMA computes the exponential moving average with the given period.
// The first defined value is the SMA of the first period inputs; after that
// the standard recurrence EMA = price*k + prev*(1-k) with k = 2/(period+1).
//
// A NaN prefix in the input (e.g. the warm-up of a MACD line fed back in for
// its signal) is skipped: the seed window starts at the first defined value.
func EMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 {
		return out
	}

	// Skip any undefined prefix
	start := 0
	for start < len(values) && math.IsNaN(values[start]) {
		start++
	}
	if len(values)-start < period {
		return out
	}

	sum := 0.0
	for i := start; i < start+period; i++ {
		sum += values[i]
	}
	prev := sum / float64(period)
	out[start+period-1] = prev

	k := 2.0 / float64(period+1)
	for i := start + period; i < len(values); i++ {
		prev = values[i]*k + prev*(1-k)
		out[i] = prev
	}
	return out
}
