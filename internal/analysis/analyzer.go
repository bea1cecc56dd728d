// Package analysis orchestrates one full analysis cycle: fetch price
// history, compute indicators and levels, derive the trade setup, evaluate
// alerts and append the resulting trade to the ledger.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"tradedesk/internal/alerts"
	"tradedesk/internal/indicator"
	"tradedesk/internal/ledger"
	"tradedesk/internal/levels"
	"tradedesk/internal/metrics"
	"tradedesk/internal/model"
	"tradedesk/internal/provider"
	"tradedesk/internal/recorder"
	"tradedesk/internal/setup"
)

// Config carries the tunable parameters of the pipeline. One config serves
// every request; there are no per-revision variants.
type Config struct {
	RSIPeriod   int
	MACDFast    int
	MACDSlow    int
	MACDSignal  int
	SMAFast     int
	SMASlow     int
	LevelWindow int

	StopFraction   float64
	TargetFraction float64

	IntradayLookback time.Duration
	DailyLookback    time.Duration
	FetchTimeout     time.Duration
}

// DefaultConfig returns the dashboard defaults.
func DefaultConfig() Config {
	return Config{
		RSIPeriod:        indicator.DefaultRSIPeriod,
		MACDFast:         indicator.DefaultMACDFast,
		MACDSlow:         indicator.DefaultMACDSlow,
		MACDSignal:       indicator.DefaultMACDSignal,
		SMAFast:          indicator.DefaultSMAFast,
		SMASlow:          indicator.DefaultSMASlow,
		LevelWindow:      levels.DefaultWindow,
		StopFraction:     setup.DefaultStopFraction,
		TargetFraction:   setup.DefaultTargetFraction,
		IntradayLookback: 7 * 24 * time.Hour,
		DailyLookback:    60 * 24 * time.Hour,
		FetchTimeout:     10 * time.Second,
	}
}

// Analyzer runs analysis cycles against one provider and one ledger.
// Safe for concurrent use; the ledger serializes its own appends.
type Analyzer struct {
	cfg      Config
	provider provider.Provider
	ledger   *ledger.Ledger
	recorder recorder.Recorder
	metrics  *metrics.Metrics // optional
	log      *slog.Logger
}

// New creates an Analyzer. metrics may be nil (e.g. in tests).
func New(cfg Config, p provider.Provider, l *ledger.Ledger, rec recorder.Recorder, m *metrics.Metrics, log *slog.Logger) *Analyzer {
	if rec == nil {
		rec = recorder.Noop{}
	}
	return &Analyzer{cfg: cfg, provider: p, ledger: l, recorder: rec, metrics: m, log: log}
}

// Analyze runs one full cycle for the symbol at the interval. On success
// exactly one entry is appended to the ledger; no failure path touches it.
func (a *Analyzer) Analyze(ctx context.Context, symbol string, interval model.Interval) (*model.AnalysisResult, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, a.fail(fmt.Errorf("%w: empty symbol", ErrInvalidInput))
	}

	lookback := a.cfg.DailyLookback
	if interval.Intraday() {
		// Providers cap granular history, so intraday requests stay short
		lookback = a.cfg.IntradayLookback
	}

	fctx, cancel := context.WithTimeout(ctx, a.cfg.FetchTimeout)
	defer cancel()

	start := time.Now()
	series, err := a.provider.Fetch(fctx, symbol, interval, lookback)
	if a.metrics != nil {
		a.metrics.FetchDur.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, a.fail(classifyFetchError(symbol, err))
	}

	series = series.Clean()
	if len(series.Bars) == 0 {
		return nil, a.fail(fmt.Errorf("%w: %s: no complete bars", ErrDataUnavailable, symbol))
	}

	res, err := a.compute(series)
	if err != nil {
		return nil, a.fail(err)
	}

	a.ledger.Append(res.Setup.LedgerEntry())
	if err := a.recorder.Record(res); err != nil {
		a.log.Warn("analysis record failed", "symbol", symbol, "err", err)
	}
	if a.metrics != nil {
		a.metrics.AnalysesTotal.WithLabelValues("ok").Inc()
		a.metrics.LedgerSize.Set(float64(a.ledger.Len()))
	}
	a.log.Info("analysis complete",
		"symbol", symbol,
		"interval", string(interval),
		"bars", len(series.Bars),
		"levels", len(res.Levels),
		"alerts", len(res.Alerts),
	)
	return res, nil
}

// compute runs the CPU-bound part of the pipeline. Panics from unexpected
// numeric states are converted into ErrComputation.
func (a *Analyzer) compute(series model.PriceSeries) (res *model.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrComputation, r)
		}
	}()

	closes := series.Closes()
	line, signal := indicator.MACD(closes, a.cfg.MACDFast, a.cfg.MACDSlow, a.cfg.MACDSignal)
	ind := model.IndicatorSet{
		RSI:        indicator.RSI(closes, a.cfg.RSIPeriod),
		MACD:       line,
		MACDSignal: signal,
		SMA50:      indicator.SMA(closes, a.cfg.SMAFast),
		SMA200:     indicator.SMA(closes, a.cfg.SMASlow),
	}

	last, _ := series.Last()
	if math.IsNaN(last.Close) || math.IsInf(last.Close, 0) {
		return nil, fmt.Errorf("%w: non-finite close for %s", ErrComputation, series.Symbol)
	}

	ts, err := setup.Calc(series.Symbol, last.Close, a.cfg.StopFraction, a.cfg.TargetFraction)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	macdLast, signalLast := ind.LastMACD()
	return &model.AnalysisResult{
		Symbol:     series.Symbol,
		Interval:   series.Interval,
		Series:     series,
		Indicators: ind,
		Levels:     levels.Detect(series.Bars, a.cfg.LevelWindow),
		Setup:      ts,
		Alerts:     alerts.Evaluate(ind.LastRSI(), macdLast, signalLast),
		ComputedAt: time.Now().UTC(),
	}, nil
}

// fail counts the failure and passes the error through.
func (a *Analyzer) fail(err error) error {
	if a.metrics != nil {
		a.metrics.AnalysesTotal.WithLabelValues(outcome(err)).Inc()
		if errors.Is(err, ErrProvider) {
			a.metrics.ProviderErrors.Inc()
		}
	}
	return err
}

func classifyFetchError(symbol string, err error) error {
	switch {
	case errors.Is(err, provider.ErrUnknownSymbol):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, provider.ErrEmptyResult):
		return fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: fetch for %s timed out", ErrDataUnavailable, symbol)
	default:
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrDataUnavailable):
		return "data_unavailable"
	case errors.Is(err, ErrProvider):
		return "provider_error"
	default:
		return "computation_error"
	}
}
