// Package provider wraps external market-data sources behind one interface
// that returns normalized OHLCV series.
package provider

import (
	"context"
	"errors"
	"time"

	"tradedesk/internal/model"
)

// Provider fetches recent price history for a symbol.
//
// Implementations return bars sorted by ascending timestamp with no
// duplicates. Network and API failures are returned wrapped so callers can
// distinguish them from the sentinel errors below with errors.Is.
type Provider interface {
	Fetch(ctx context.Context, symbol string, interval model.Interval, lookback time.Duration) (model.PriceSeries, error)
}

var (
	// ErrUnknownSymbol means the provider could not resolve the symbol.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrEmptyResult means the provider answered but returned no bars.
	ErrEmptyResult = errors.New("provider returned no bars")
)
