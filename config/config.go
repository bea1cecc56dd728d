package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment
// variables. Every setting has a working default; a bare `server` binary
// starts against Yahoo Finance with no cache, recorder or watchlist.
type Config struct {
	// Listeners
	HTTPAddr    string
	MetricsAddr string

	// Market data
	Provider         string // "yahoo" or "binance"
	BinanceAPIKey    string
	BinanceSecretKey string

	// Optional series cache
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	// Optional analysis recorder
	SQLitePath string

	// Optional watchlist scanner
	WatchlistPath string

	// Optional Telegram alerts
	TelegramBotToken string
	TelegramChatID   string

	// Pipeline tuning
	IntradayLookback time.Duration
	DailyLookback    time.Duration
	FetchTimeout     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		MetricsAddr: getEnv("METRICS_ADDR", ":9090"),

		Provider:         getEnv("PROVIDER", "yahoo"),
		BinanceAPIKey:    getEnv("BINANCE_API_KEY", ""),
		BinanceSecretKey: getEnv("BINANCE_SECRET_KEY", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getEnvDuration("CACHE_TTL", 60*time.Second),

		SQLitePath:    getEnv("SQLITE_PATH", ""),
		WatchlistPath: getEnv("WATCHLIST_PATH", ""),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),

		IntradayLookback: getEnvDuration("INTRADAY_LOOKBACK", 7*24*time.Hour),
		DailyLookback:    getEnvDuration("DAILY_LOOKBACK", 60*24*time.Hour),
		FetchTimeout:     getEnvDuration("FETCH_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		// Plain integers are taken as seconds
		if n, err2 := strconv.Atoi(v); err2 == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
		log.Printf("[config] invalid duration for %s: %q, using default", key, v)
		return fallback
	}
	return d
}
