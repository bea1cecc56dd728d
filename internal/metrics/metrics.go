// Package metrics exposes Prometheus metrics for the analysis service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the dashboard backend.
type Metrics struct {
	AnalysesTotal  *prometheus.CounterVec // labels: outcome
	FetchDur       prometheus.Histogram
	ProviderErrors prometheus.Counter
	LedgerSize     prometheus.Gauge
	StreamClients  prometheus.Gauge
	WatchScans     prometheus.Counter
	WatchAlerts    prometheus.Counter
}

// New registers and returns all metrics.
func New() *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradedesk_analyses_total",
			Help: "Analyses performed, by outcome (ok, invalid_input, data_unavailable, provider_error, computation_error)",
		}, []string{"outcome"}),
		FetchDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tradedesk_provider_fetch_duration_seconds",
			Help:    "Market-data provider fetch latency",
			Buckets: prometheus.DefBuckets,
		}),
		ProviderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradedesk_provider_errors_total",
			Help: "Provider fetch failures",
		}),
		LedgerSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tradedesk_ledger_entries",
			Help: "Current number of entries in the trade ledger",
		}),
		StreamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tradedesk_stream_clients",
			Help: "Connected WebSocket stream clients",
		}),
		WatchScans: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradedesk_watch_scans_total",
			Help: "Watchlist scan runs",
		}),
		WatchAlerts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradedesk_watch_alerts_total",
			Help: "Alerts raised by watchlist scans",
		}),
	}

	prometheus.MustRegister(
		m.AnalysesTotal,
		m.FetchDur,
		m.ProviderErrors,
		m.LedgerSize,
		m.StreamClients,
		m.WatchScans,
		m.WatchAlerts,
	)
	return m
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
