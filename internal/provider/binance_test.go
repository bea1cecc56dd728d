package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tradedesk/internal/model"
)

func newTestBinance(url string) *Binance {
	b := NewBinance("", "")
	b.client.BaseURL = url
	return b
}

const klinesJSON = `[
	[1704067200000,"100.0","101.0","99.0","100.5","1000.0",1704153599999,"100500.0",10,"500.0","50250.0","0"],
	[1704153600000,"100.5","102.0","100.0","101.5","1200.0",1704239999999,"121800.0",12,"600.0","60900.0","0"]
]`

func TestBinanceFetchParsesKlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(klinesJSON))
	}))
	defer srv.Close()

	b := newTestBinance(srv.URL)
	series, err := b.Fetch(context.Background(), "BTCUSDT", model.IntervalDay, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Symbol != "BTCUSDT" || series.Interval != model.IntervalDay {
		t.Errorf("series identity: got %q/%q", series.Symbol, series.Interval)
	}
	if len(series.Bars) != 2 {
		t.Fatalf("bars: got %d, want 2", len(series.Bars))
	}
	first := series.Bars[0]
	if !first.TS.Equal(time.UnixMilli(1704067200000).UTC()) {
		t.Errorf("first bar TS: got %v", first.TS)
	}
	if first.Close != 100.5 || first.Volume != 1000 {
		t.Errorf("first bar: got close=%v volume=%v", first.Close, first.Volume)
	}
	if series.Bars[1].Close != 101.5 {
		t.Errorf("second bar close: got %v", series.Bars[1].Close)
	}
}

func TestBinanceUnknownSymbolNoRetry(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
	}))
	defer srv.Close()

	b := newTestBinance(srv.URL)
	_, err := b.Fetch(context.Background(), "NOPE", model.IntervalDay, 24*time.Hour)
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Errorf("requests: got %d, want 1 (unknown symbols must not be retried)", n)
	}
}

// TestBinanceRetryStopsAfterFinalAttempt verifies the fetch returns promptly
// once the last attempt fails instead of sleeping one more backoff. With two
// attempts only the single 200ms gap between them should elapse.
func TestBinanceRetryStopsAfterFinalAttempt(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code":-1100,"msg":"transient"}`))
	}))
	defer srv.Close()

	b := newTestBinance(srv.URL)
	b.retries = 2

	start := time.Now()
	_, err := b.Fetch(context.Background(), "BTCUSDT", model.IntervalDay, 24*time.Hour)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if n := atomic.LoadInt32(&requests); n != 2 {
		t.Errorf("requests: got %d, want 2", n)
	}
	if elapsed >= 500*time.Millisecond {
		t.Errorf("fetch took %v; should not sleep a backoff after the final attempt", elapsed)
	}
}
