package indicator

import "math"

// MACD computes the MACD line (fast EMA - slow EMA) and its signal line
// (an EMA of the MACD line itself). With the defaults 12/26/9 the line is
// defined from index slow-1 and the signal from index slow+signal-2.
func MACD(closes []float64, fast, slow, signal int) (line, sig []float64) {
	line = nanSlice(len(closes))
	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)
	for i := range closes {
		if !math.IsNaN(fastEMA[i]) && !math.IsNaN(slowEMA[i]) {
			line[i] = fastEMA[i] - slowEMA[i]
		}
	}
	sig = EMA(line, signal)
	return line, sig
}
