package indicator

// SMA computes the simple moving average with the given period.
// Values are NaN for indices < period-1. Uses a running sum so the whole
// series is one O(n) pass.
func SMA(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period <= 0 || len(closes) < period {
		return out
	}

	sum := 0.0
	for i, c := range closes {
		sum += c
		if i >= period {
			sum -= closes[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}
