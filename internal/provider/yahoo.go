package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"tradedesk/internal/model"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// Yahoo fetches OHLCV history from the Yahoo Finance v8 chart API.
// A small rate limiter keeps dashboard bursts from tripping Yahoo's
// throttling.
type Yahoo struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
}

// NewYahoo creates a Yahoo provider.
func NewYahoo() *Yahoo {
	return &Yahoo{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(4), 8),
		baseURL: defaultYahooBaseURL,
	}
}

// yahooChart is the response structure of the chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Fetch implements Provider.
func (y *Yahoo) Fetch(ctx context.Context, symbol string, interval model.Interval, lookback time.Duration) (model.PriceSeries, error) {
	series := model.PriceSeries{Symbol: symbol, Interval: interval}

	if err := y.limiter.Wait(ctx); err != nil {
		return series, err
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		y.baseURL, url.PathEscape(symbol), yahooInterval(interval), yahooRange(interval, lookback))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return series, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := y.client.Do(req)
	if err != nil {
		return series, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return series, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return series, fmt.Errorf("yahoo: %q: %w", symbol, ErrUnknownSymbol)
	}
	if resp.StatusCode != http.StatusOK {
		return series, fmt.Errorf("yahoo: status %d: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return series, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		if chart.Chart.Error.Code == "Not Found" {
			return series, fmt.Errorf("yahoo: %q: %w", symbol, ErrUnknownSymbol)
		}
		return series, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return series, fmt.Errorf("yahoo: %q: %w", symbol, ErrEmptyResult)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return series, fmt.Errorf("yahoo: %q: %w", symbol, ErrEmptyResult)
	}
	quote := result.Indicators.Quote[0]

	cutoff := time.Now().Add(-lookback)
	bars := make([]model.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		bar := model.Bar{
			TS:     time.Unix(ts, 0).UTC(),
			Open:   deref(quote.Open, i),
			High:   deref(quote.High, i),
			Low:    deref(quote.Low, i),
			Close:  deref(quote.Close, i),
			Volume: deref(quote.Volume, i),
		}
		// Null bars (holidays, halts) come back as JSON null
		if !bar.Complete() || bar.TS.Before(cutoff) {
			continue
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return series, fmt.Errorf("yahoo: %q: %w", symbol, ErrEmptyResult)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].TS.Before(bars[j].TS) })
	series.Bars = bars
	return series, nil
}

func deref(xs []*float64, i int) float64 {
	if i >= len(xs) || xs[i] == nil {
		return 0
	}
	return *xs[i]
}

func yahooInterval(iv model.Interval) string {
	switch iv {
	case model.IntervalMinute:
		return "1m"
	case model.IntervalHour:
		return "60m"
	case model.IntervalWeek:
		return "1wk"
	default:
		return "1d"
	}
}

// yahooRange picks the smallest chart range that covers the lookback.
// Yahoo caps minute granularity at roughly a week, which is why intraday
// analyses request short windows in the first place.
func yahooRange(iv model.Interval, lookback time.Duration) string {
	days := int(lookback.Hours() / 24)
	switch iv {
	case model.IntervalMinute:
		// Yahoo serves minute bars for at most about a week
		return "5d"
	case model.IntervalHour:
		return "1mo"
	case model.IntervalWeek:
		if days <= 365 {
			return "1y"
		}
		return "2y"
	default:
		switch {
		case days <= 30:
			return "1mo"
		case days <= 90:
			return "3mo"
		case days <= 180:
			return "6mo"
		default:
			return "1y"
		}
	}
}
