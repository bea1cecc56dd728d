// Package indicator provides technical indicator calculations over closing
// price sequences.
//
// All functions are pure: they take a slice of closes and return a slice of
// the same length, aligned by index with the input. Indices inside the
// warm-up window, where the indicator is not yet defined, hold NaN. EMAs are
// seeded with the SMA of the first period values; changing that seed shifts
// every downstream alert threshold, so it is fixed here.
package indicator

import "math"

// Default periods used by the analysis pipeline.
const (
	DefaultRSIPeriod  = 14
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
	DefaultSMAFast    = 50
	DefaultSMASlow    = 200
)

// nanSlice returns a slice of n NaNs.
func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
