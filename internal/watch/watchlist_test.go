package watch

import (
	"os"
	"path/filepath"
	"testing"
)

func writeList(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write watchlist: %v", err)
	}
	return path
}

func TestLoadWatchlist(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, wl *Watchlist)
	}{
		{
			name: "valid list",
			yaml: "cron: \"0 */5 * * * *\"\nsymbols:\n  - symbol: EURUSD=X\n    interval: 1d\n  - symbol: BTC-USD\n    interval: 1h\n",
			check: func(t *testing.T, wl *Watchlist) {
				if wl.Cron != "0 */5 * * * *" {
					t.Errorf("cron: got %q", wl.Cron)
				}
				if len(wl.Entries) != 2 {
					t.Fatalf("entries: got %d, want 2", len(wl.Entries))
				}
				if wl.Entries[1].Interval != "1h" {
					t.Errorf("entry 1 interval: got %q, want 1h", wl.Entries[1].Interval)
				}
			},
		},
		{
			name: "missing cron gets default",
			yaml: "symbols:\n  - symbol: BTC-USD\n    interval: 1d\n",
			check: func(t *testing.T, wl *Watchlist) {
				if wl.Cron != "0 */15 * * * *" {
					t.Errorf("cron: got %q, want the 15-minute default", wl.Cron)
				}
			},
		},
		{
			name: "missing interval defaults to daily",
			yaml: "symbols:\n  - symbol: BTC-USD\n",
			check: func(t *testing.T, wl *Watchlist) {
				if wl.Entries[0].Interval != "1d" {
					t.Errorf("interval: got %q, want 1d", wl.Entries[0].Interval)
				}
			},
		},
		{
			name:    "empty symbol rejected",
			yaml:    "symbols:\n  - symbol: \"\"\n    interval: 1d\n",
			wantErr: true,
		},
		{
			name:    "unknown interval rejected",
			yaml:    "symbols:\n  - symbol: BTC-USD\n    interval: 3h\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml rejected",
			yaml:    "symbols: [unclosed",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wl, err := LoadWatchlist(writeList(t, tc.yaml))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tc.check(t, wl)
		})
	}
}

func TestLoadWatchlistMissingFile(t *testing.T) {
	if _, err := LoadWatchlist(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
