package provider

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"

	"tradedesk/internal/model"
)

// binanceInvalidSymbol is the Binance API error code for an unknown symbol.
const binanceInvalidSymbol = -1121

// Binance fetches OHLCV history from the Binance spot klines API. Symbols
// use Binance notation, e.g. "BTCUSDT".
type Binance struct {
	client  *binance.Client
	retries int
}

// NewBinance creates a Binance provider. Klines are public data, so the
// credentials may be empty.
func NewBinance(apiKey, secretKey string) *Binance {
	return &Binance{
		client:  binance.NewClient(apiKey, secretKey),
		retries: 3,
	}
}

// Fetch implements Provider.
func (b *Binance) Fetch(ctx context.Context, symbol string, interval model.Interval, lookback time.Duration) (model.PriceSeries, error) {
	series := model.PriceSeries{Symbol: symbol, Interval: interval}
	start := time.Now().Add(-lookback).UnixMilli()

	var klines []*binance.Kline
	var err error
	backoff := 200 * time.Millisecond
	for attempt := 0; attempt < b.retries; attempt++ {
		klines, err = b.client.NewKlinesService().
			Symbol(symbol).
			Interval(string(interval)).
			StartTime(start).
			Limit(1000).
			Do(ctx)
		if err == nil {
			break
		}

		var apiErr *common.APIError
		if errors.As(err, &apiErr) && apiErr.Code == binanceInvalidSymbol {
			return series, fmt.Errorf("binance: %q: %w", symbol, ErrUnknownSymbol)
		}
		if attempt == b.retries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return series, ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}
	if err != nil {
		return series, fmt.Errorf("binance klines: %w", err)
	}
	if len(klines) == 0 {
		return series, fmt.Errorf("binance: %q: %w", symbol, ErrEmptyResult)
	}

	bars := make([]model.Bar, 0, len(klines))
	for _, k := range klines {
		bar, err := klineToBar(k)
		if err != nil {
			return series, fmt.Errorf("binance kline parse: %w", err)
		}
		bars = append(bars, bar)
	}
	series.Bars = bars
	return series, nil
}

func klineToBar(k *binance.Kline) (model.Bar, error) {
	open, err := strconv.ParseFloat(k.Open, 64)
	if err != nil {
		return model.Bar{}, err
	}
	high, err := strconv.ParseFloat(k.High, 64)
	if err != nil {
		return model.Bar{}, err
	}
	low, err := strconv.ParseFloat(k.Low, 64)
	if err != nil {
		return model.Bar{}, err
	}
	clos, err := strconv.ParseFloat(k.Close, 64)
	if err != nil {
		return model.Bar{}, err
	}
	vol, err := strconv.ParseFloat(k.Volume, 64)
	if err != nil {
		return model.Bar{}, err
	}
	return model.Bar{
		TS:     time.UnixMilli(k.OpenTime).UTC(),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  clos,
		Volume: vol,
	}, nil
}
