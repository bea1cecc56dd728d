package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"tradedesk/internal/model"
)

func testYahoo(baseURL string) *Yahoo {
	return &Yahoo{
		client:  &http.Client{Timeout: 5 * time.Second},
		limiter: rate.NewLimiter(rate.Inf, 1),
		baseURL: baseURL,
	}
}

func chartJSON(ts []int64, closes []any) string {
	body := map[string]any{
		"chart": map[string]any{
			"result": []any{
				map[string]any{
					"timestamp": ts,
					"indicators": map[string]any{
						"quote": []any{
							map[string]any{
								"open":   closes,
								"high":   closes,
								"low":    closes,
								"close":  closes,
								"volume": closes,
							},
						},
					},
				},
			},
		},
	}
	b, _ := json.Marshal(body)
	return string(b)
}

func TestYahoo_FetchParsesBars(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	ts := []int64{
		now.Add(-72 * time.Hour).Unix(),
		now.Add(-48 * time.Hour).Unix(),
		now.Add(-24 * time.Hour).Unix(),
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("interval"); got != "1d" {
			t.Errorf("interval param: got %q, want 1d", got)
		}
		fmt.Fprint(w, chartJSON(ts, []any{101.5, 102.5, 103.5}))
	}))
	defer srv.Close()

	series, err := testYahoo(srv.URL).Fetch(context.Background(), "EURUSD=X", model.IntervalDay, 60*24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(series.Bars))
	}
	for i := 1; i < len(series.Bars); i++ {
		if !series.Bars[i].TS.After(series.Bars[i-1].TS) {
			t.Errorf("timestamps not strictly increasing at index %d", i)
		}
	}
	if series.Bars[2].Close != 103.5 {
		t.Errorf("last close: got %v, want 103.5", series.Bars[2].Close)
	}
}

func TestYahoo_SkipsNullBars(t *testing.T) {
	now := time.Now().UTC()
	ts := []int64{
		now.Add(-48 * time.Hour).Unix(),
		now.Add(-24 * time.Hour).Unix(),
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Second bar is a provider null (holiday)
		fmt.Fprint(w, chartJSON(ts, []any{101.5, nil}))
	}))
	defer srv.Close()

	series, err := testYahoo(srv.URL).Fetch(context.Background(), "EURUSD=X", model.IntervalDay, 60*24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Bars) != 1 {
		t.Fatalf("expected the null bar to be dropped, got %d bars", len(series.Bars))
	}
}

func TestYahoo_UnknownSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testYahoo(srv.URL).Fetch(context.Background(), "NOPE", model.IntervalDay, 60*24*time.Hour)
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestYahoo_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[{"timestamp":[],"indicators":{"quote":[{}]}}]}}`)
	}))
	defer srv.Close()

	_, err := testYahoo(srv.URL).Fetch(context.Background(), "EURUSD=X", model.IntervalDay, 60*24*time.Hour)
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
}
