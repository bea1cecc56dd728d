package indicator

import "math"

// RSI computes the Relative Strength Index using Wilder's smoothing method.
// The initial averages are the SMA of the first period gains/losses, so the
// first defined value lands at index period (a delta needs two closes).
// Fewer than 2 closes yields an all-NaN series.
func RSI(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	avgGain := 0.0
	avgLoss := 0.0
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	p := float64(period)
	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		// Wilder's smoothing: avg = (prevAvg*(period-1) + x) / period
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0 // flat series: neither gain nor loss
		}
		return 100.0
	}
	rs := avgGain / avgLoss
	v := 100.0 - 100.0/(1.0+rs)
	if math.IsNaN(v) {
		return math.NaN()
	}
	return v
}
