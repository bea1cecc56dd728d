package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tradedesk/config"
	"tradedesk/internal/analysis"
	"tradedesk/internal/api"
	"tradedesk/internal/ledger"
	"tradedesk/internal/logger"
	"tradedesk/internal/metrics"
	"tradedesk/internal/notifier"
	"tradedesk/internal/provider"
	"tradedesk/internal/recorder"
	"tradedesk/internal/stream"
	"tradedesk/internal/watch"
)

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	log := logger.Init("tradedesk", slog.LevelInfo)
	cfg := config.Load()
	m := metrics.New()

	// Market data provider, optionally behind the Redis series cache
	var prov provider.Provider
	switch cfg.Provider {
	case "binance":
		prov = provider.NewBinance(cfg.BinanceAPIKey, cfg.BinanceSecretKey)
	case "yahoo":
		prov = provider.NewYahoo()
	default:
		log.Error("unknown provider", "provider", cfg.Provider)
		os.Exit(1)
	}
	if cfg.RedisAddr != "" {
		cache, err := provider.NewCache(prov, cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL, log)
		if err != nil {
			log.Error("series cache init failed", "err", err)
			os.Exit(1)
		}
		defer cache.Close()
		prov = cache
		log.Info("series cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	}

	// Analysis recorder
	var rec recorder.Recorder = recorder.Noop{}
	if cfg.SQLitePath != "" {
		sqlRec, err := recorder.NewSQLite(cfg.SQLitePath)
		if err != nil {
			log.Error("recorder init failed", "path", cfg.SQLitePath, "err", err)
			os.Exit(1)
		}
		defer sqlRec.Close()
		rec = sqlRec
		log.Info("analysis recorder enabled", "path", cfg.SQLitePath)
	}

	// Core pipeline
	book := ledger.New()
	acfg := analysis.DefaultConfig()
	acfg.IntradayLookback = cfg.IntradayLookback
	acfg.DailyLookback = cfg.DailyLookback
	acfg.FetchTimeout = cfg.FetchTimeout
	analyzer := analysis.New(acfg, prov, book, rec, m, log)

	hub := stream.NewHub(m, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Watchlist scanner
	if cfg.WatchlistPath != "" {
		list, err := watch.LoadWatchlist(cfg.WatchlistPath)
		if err != nil {
			log.Error("watchlist load failed", "path", cfg.WatchlistPath, "err", err)
			os.Exit(1)
		}
		var note notifier.Notifier = notifier.Noop{}
		if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
			note = notifier.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
			log.Info("telegram alerts enabled")
		}
		watcher := watch.New(list, prov, hub, note, m, cfg.IntradayLookback, cfg.DailyLookback, log)
		if err := watcher.Start(ctx); err != nil {
			log.Error("watcher start failed", "err", err)
			os.Exit(1)
		}
		defer watcher.Stop()
	}

	// Metrics listener
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metrics.Handler())
	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics listener failed", "err", err)
		}
	}()

	// API listener
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewServer(analyzer, book, hub, log).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("api listening", "addr", cfg.HTTPAddr, "provider", cfg.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("api listener failed", "err", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "err", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("metrics shutdown", "err", err)
	}
}
