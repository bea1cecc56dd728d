package watch

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"tradedesk/internal/model"
	"tradedesk/internal/notifier"
	"tradedesk/internal/stream"
)

// fetchFunc adapts a func to provider.Provider for tests.
type fetchFunc func(ctx context.Context, symbol string, interval model.Interval, lookback time.Duration) (model.PriceSeries, error)

func (f fetchFunc) Fetch(ctx context.Context, symbol string, interval model.Interval, lookback time.Duration) (model.PriceSeries, error) {
	return f(ctx, symbol, interval, lookback)
}

// recordingNotifier captures sent alert texts.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (r *recordingNotifier) Send(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, text)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func series(symbol string, interval model.Interval, n int, step float64) model.PriceSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	for i := range bars {
		c := 100.0 + float64(i)*step
		bars[i] = model.Bar{
			TS:     base.Add(time.Duration(i) * time.Hour),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return model.PriceSeries{Symbol: symbol, Interval: interval, Bars: bars}
}

// TestScanUsesConfiguredLookbacks verifies a scan asks the provider for the
// same windows the analyzer is configured with, per entry interval, so cached
// series warmed by the scanner stay valid for later analyses.
func TestScanUsesConfiguredLookbacks(t *testing.T) {
	list := &Watchlist{
		Cron: "0 */15 * * * *",
		Entries: []Entry{
			{Symbol: "EURUSD=X", Interval: "1d"},
			{Symbol: "BTC-USD", Interval: "1h"},
		},
	}
	intraday := 3 * 24 * time.Hour
	daily := 120 * 24 * time.Hour

	var mu sync.Mutex
	got := make(map[string]time.Duration)
	prov := fetchFunc(func(ctx context.Context, symbol string, interval model.Interval, lookback time.Duration) (model.PriceSeries, error) {
		mu.Lock()
		got[symbol] = lookback
		mu.Unlock()
		// flat closes raise no alerts
		return series(symbol, interval, 40, 0), nil
	})

	w := New(list, prov, stream.NewHub(nil, discardLogger()), notifier.Noop{}, nil, intraday, daily, discardLogger())
	w.Scan(context.Background())

	if got["EURUSD=X"] != daily {
		t.Errorf("daily lookback: got %v, want %v", got["EURUSD=X"], daily)
	}
	if got["BTC-USD"] != intraday {
		t.Errorf("intraday lookback: got %v, want %v", got["BTC-USD"], intraday)
	}
}

// TestNewLookbackDefaults verifies zero lookbacks fall back to the 7-day
// intraday and 60-day daily defaults.
func TestNewLookbackDefaults(t *testing.T) {
	list := &Watchlist{Cron: "0 */15 * * * *"}
	w := New(list, nil, stream.NewHub(nil, discardLogger()), notifier.Noop{}, nil, 0, 0, discardLogger())

	if w.intradayLookback != 7*24*time.Hour {
		t.Errorf("intraday default: got %v, want 168h", w.intradayLookback)
	}
	if w.dailyLookback != 60*24*time.Hour {
		t.Errorf("daily default: got %v, want 1440h", w.dailyLookback)
	}
}

// TestScanNotifiesOnAlert verifies a trending symbol produces a notification
// naming the symbol and a quiet symbol produces none.
func TestScanNotifiesOnAlert(t *testing.T) {
	list := &Watchlist{
		Cron: "0 */15 * * * *",
		Entries: []Entry{
			{Symbol: "HOT", Interval: "1d"},
			{Symbol: "FLAT", Interval: "1d"},
		},
	}
	prov := fetchFunc(func(ctx context.Context, symbol string, interval model.Interval, lookback time.Duration) (model.PriceSeries, error) {
		if symbol == "HOT" {
			// a steady climb drives RSI above 70
			return series(symbol, interval, 40, 1), nil
		}
		return series(symbol, interval, 40, 0), nil
	})
	rec := &recordingNotifier{}

	w := New(list, prov, stream.NewHub(nil, discardLogger()), rec, nil, 0, 0, discardLogger())
	w.Scan(context.Background())

	if len(rec.sent) != 1 {
		t.Fatalf("notifications: got %d, want 1 (%v)", len(rec.sent), rec.sent)
	}
	if !strings.Contains(rec.sent[0], "HOT") {
		t.Errorf("notification should name the symbol: %q", rec.sent[0])
	}
}

// TestScanSurvivesProviderErrors verifies one failing symbol does not stop
// the rest of the scan.
func TestScanSurvivesProviderErrors(t *testing.T) {
	list := &Watchlist{
		Cron: "0 */15 * * * *",
		Entries: []Entry{
			{Symbol: "BAD", Interval: "1d"},
			{Symbol: "HOT", Interval: "1d"},
		},
	}
	prov := fetchFunc(func(ctx context.Context, symbol string, interval model.Interval, lookback time.Duration) (model.PriceSeries, error) {
		if symbol == "BAD" {
			return model.PriceSeries{}, context.DeadlineExceeded
		}
		return series(symbol, interval, 40, 1), nil
	})
	rec := &recordingNotifier{}

	w := New(list, prov, stream.NewHub(nil, discardLogger()), rec, nil, 0, 0, discardLogger())
	w.Scan(context.Background())

	if len(rec.sent) != 1 || !strings.Contains(rec.sent[0], "HOT") {
		t.Fatalf("expected the healthy symbol to still alert, got %v", rec.sent)
	}
}
