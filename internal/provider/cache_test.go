package provider

import (
	"testing"
	"time"

	"tradedesk/internal/model"
)

// TestCacheKeyIncludesLookback verifies the same symbol and interval fetched
// over different windows never alias to one cache entry.
func TestCacheKeyIncludesLookback(t *testing.T) {
	short := cacheKey("BTC-USD", model.IntervalDay, 60*24*time.Hour)
	long := cacheKey("BTC-USD", model.IntervalDay, 365*24*time.Hour)

	if short == long {
		t.Fatalf("keys alias across lookbacks: %q", short)
	}
	if want := "series:BTC-USD:1d:1440h0m0s"; short != want {
		t.Errorf("key: got %q, want %q", short, want)
	}
}
