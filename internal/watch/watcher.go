// Package watch periodically scans a configured watchlist for momentum
// alerts and pushes hits to the stream hub and the notifier.
//
// Scans evaluate indicators only; they never derive a trade setup and never
// touch the ledger. Trades are recorded only when a user asks for an
// analysis.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"tradedesk/internal/alerts"
	"tradedesk/internal/indicator"
	"tradedesk/internal/metrics"
	"tradedesk/internal/model"
	"tradedesk/internal/notifier"
	"tradedesk/internal/provider"
	"tradedesk/internal/stream"
)

// AlertEvent is published on the stream for each watchlist hit.
type AlertEvent struct {
	Symbol   string         `json:"symbol"`
	Interval model.Interval `json:"interval"`
	Alerts   []model.Alert  `json:"alerts"`
	Messages []string       `json:"messages"`
	Close    float64        `json:"close"`
}

// Watcher runs the scheduled watchlist scans.
type Watcher struct {
	list     *Watchlist
	provider provider.Provider
	hub      *stream.Hub
	notify   notifier.Notifier
	metrics  *metrics.Metrics // optional
	log      *slog.Logger

	intradayLookback time.Duration
	dailyLookback    time.Duration
	timeout          time.Duration
	cron             *cron.Cron
}

// New creates a Watcher. The lookbacks should match the analyzer's, so a
// scan warms the series cache with the same window an analysis will ask
// for; zero values fall back to the analyzer defaults. The notifier may be
// notifier.Noop.
func New(list *Watchlist, p provider.Provider, hub *stream.Hub, n notifier.Notifier, m *metrics.Metrics, intraday, daily time.Duration, log *slog.Logger) *Watcher {
	if intraday <= 0 {
		intraday = 7 * 24 * time.Hour
	}
	if daily <= 0 {
		daily = 60 * 24 * time.Hour
	}
	return &Watcher{
		list:             list,
		provider:         p,
		hub:              hub,
		notify:           n,
		metrics:          m,
		log:              log,
		intradayLookback: intraday,
		dailyLookback:    daily,
		timeout:          10 * time.Second,
		cron:             cron.New(cron.WithSeconds()),
	}
}

// Start registers the scan job and starts the scheduler.
func (w *Watcher) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.list.Cron, func() { w.Scan(ctx) }); err != nil {
		return fmt.Errorf("register watch job: %w", err)
	}
	w.cron.Start()
	w.log.Info("watchlist scheduler started", "cron", w.list.Cron, "symbols", len(w.list.Entries))
	return nil
}

// Stop stops the scheduler and waits for a running scan to finish.
func (w *Watcher) Stop() {
	<-w.cron.Stop().Done()
	w.log.Info("watchlist scheduler stopped")
}

// Scan fetches every watched symbol once and publishes raised alerts.
func (w *Watcher) Scan(ctx context.Context) {
	if w.metrics != nil {
		w.metrics.WatchScans.Inc()
	}
	for _, entry := range w.list.Entries {
		if err := w.scanOne(ctx, entry); err != nil {
			w.log.Warn("watchlist scan failed", "symbol", entry.Symbol, "err", err)
		}
	}
}

func (w *Watcher) scanOne(ctx context.Context, entry Entry) error {
	interval, err := model.ParseInterval(entry.Interval)
	if err != nil {
		return err
	}

	lookback := w.dailyLookback
	if interval.Intraday() {
		lookback = w.intradayLookback
	}

	fctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	series, err := w.provider.Fetch(fctx, entry.Symbol, interval, lookback)
	if err != nil {
		return err
	}
	series = series.Clean()
	if len(series.Bars) == 0 {
		return fmt.Errorf("no complete bars for %s", entry.Symbol)
	}

	closes := series.Closes()
	rsi := indicator.RSI(closes, indicator.DefaultRSIPeriod)
	line, signal := indicator.MACD(closes, indicator.DefaultMACDFast, indicator.DefaultMACDSlow, indicator.DefaultMACDSignal)

	raised := alerts.Evaluate(rsi[len(rsi)-1], line[len(line)-1], signal[len(signal)-1])
	if len(raised) == 0 {
		return nil
	}
	if w.metrics != nil {
		w.metrics.WatchAlerts.Add(float64(len(raised)))
	}

	last, _ := series.Last()
	msgs := alerts.Messages(raised)
	w.hub.Publish(stream.EventAlert, AlertEvent{
		Symbol:   entry.Symbol,
		Interval: interval,
		Alerts:   raised,
		Messages: msgs,
		Close:    last.Close,
	})

	text := fmt.Sprintf("%s (%s): %s", entry.Symbol, interval, strings.Join(msgs, "; "))
	if err := w.notify.Send(text); err != nil {
		w.log.Warn("alert notification failed", "symbol", entry.Symbol, "err", err)
	}
	w.log.Info("watchlist alert", "symbol", entry.Symbol, "alerts", len(raised))
	return nil
}
