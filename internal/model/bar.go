package model

import (
	"fmt"
	"time"
)

// Interval identifies the sampling interval of a price series.
type Interval string

const (
	IntervalMinute Interval = "1m"
	IntervalHour   Interval = "1h"
	IntervalDay    Interval = "1d"
	IntervalWeek   Interval = "1w"
)

// ParseInterval validates and normalizes an interval string.
func ParseInterval(s string) (Interval, error) {
	switch Interval(s) {
	case IntervalMinute, IntervalHour, IntervalDay, IntervalWeek:
		return Interval(s), nil
	}
	return "", fmt.Errorf("invalid interval %q (want 1m, 1h, 1d or 1w)", s)
}

// Intraday reports whether the interval is sub-daily. Intraday requests use a
// short lookback window because providers cap granular history.
func (iv Interval) Intraday() bool {
	return iv == IntervalMinute || iv == IntervalHour
}

// Bar is a single OHLCV price bar.
type Bar struct {
	TS     time.Time `json:"ts"` // bucket start time, UTC
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Complete reports whether the bar carries usable prices. Providers emit
// zero-filled bars on holidays and partial outages; those are dropped before
// analysis.
func (b Bar) Complete() bool {
	return b.Open > 0 && b.High > 0 && b.Low > 0 && b.Close > 0
}

// PriceSeries is an ordered sequence of bars for one symbol at one interval.
// Timestamps are strictly increasing.
type PriceSeries struct {
	Symbol   string   `json:"symbol"`
	Interval Interval `json:"interval"`
	Bars     []Bar    `json:"bars"`
}

// Closes returns the closing prices, aligned 1:1 with Bars.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Last returns the most recent bar, or false when the series is empty.
func (s PriceSeries) Last() (Bar, bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Clean returns a copy of the series with incomplete bars removed.
func (s PriceSeries) Clean() PriceSeries {
	bars := make([]Bar, 0, len(s.Bars))
	for _, b := range s.Bars {
		if b.Complete() {
			bars = append(bars, b)
		}
	}
	return PriceSeries{Symbol: s.Symbol, Interval: s.Interval, Bars: bars}
}
