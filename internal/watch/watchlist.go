package watch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tradedesk/internal/model"
)

// Entry is one watched symbol.
type Entry struct {
	Symbol   string `yaml:"symbol"`
	Interval string `yaml:"interval"`
}

// Watchlist is the scanner configuration loaded from YAML.
type Watchlist struct {
	// Cron is a six-field cron spec (with seconds), e.g. "0 */15 * * * *".
	Cron    string  `yaml:"cron"`
	Entries []Entry `yaml:"symbols"`
}

// LoadWatchlist reads and validates a watchlist file.
func LoadWatchlist(path string) (*Watchlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}

	var wl Watchlist
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parse watchlist: %w", err)
	}
	if wl.Cron == "" {
		wl.Cron = "0 */15 * * * *"
	}

	for i, e := range wl.Entries {
		if e.Symbol == "" {
			return nil, fmt.Errorf("watchlist entry %d: empty symbol", i)
		}
		if e.Interval == "" {
			wl.Entries[i].Interval = string(model.IntervalDay)
			continue
		}
		if _, err := model.ParseInterval(e.Interval); err != nil {
			return nil, fmt.Errorf("watchlist entry %d: %w", i, err)
		}
	}
	return &wl, nil
}
