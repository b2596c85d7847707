// Package config provides configuration management functionality.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the dashboard configuration. Username and Symbols are
// resolved once at load time and never change for the lifetime of the
// process; every component reads them from here instead of from package
// globals.
type Config struct {
	APIURL   string
	Username string // viewing identity; empty means anonymous
	Symbols  []string

	NewsPageURL  string // click-through target for the marquee
	StockPageURL string // click-through target for a stock widget

	UserPollInterval  time.Duration
	StockPollInterval time.Duration
	NewsPollInterval  time.Duration
	HeadlineLimit     int

	LogLevel  string
	LogFile   string
	StateFile string
}

// DefaultSymbols is the stock board present at startup, in display order.
// The board index is built from this list once; quotes for symbols outside
// it are dropped.
var DefaultSymbols = []string{"XOM", "CVX", "ALD", "APPL", "MFST", "GOOG", "PFE", "JNJ", "CSL"}

// Load reads configuration from environment variables (and a .env file when
// present). Poll cadences mirror the web dashboard: balance and stocks every
// two seconds, headlines every six, three headlines per fetch.
func Load() (*Config, error) {
	_ = godotenv.Load()

	apiURL := strings.TrimRight(getEnv("BANKBOARD_API_URL", "http://localhost:8888"), "/")

	cfg := &Config{
		APIURL:            apiURL,
		Username:          getEnv("BANKBOARD_USERNAME", ""),
		Symbols:           splitList(getEnv("BANKBOARD_SYMBOLS", "")),
		NewsPageURL:       getEnv("BANKBOARD_NEWS_PAGE_URL", apiURL+"/news.html"),
		StockPageURL:      getEnv("BANKBOARD_STOCK_PAGE_URL", apiURL+"/stock.html"),
		UserPollInterval:  time.Duration(getEnvAsInt("BANKBOARD_USER_POLL_MS", 2000)) * time.Millisecond,
		StockPollInterval: time.Duration(getEnvAsInt("BANKBOARD_STOCK_POLL_MS", 2000)) * time.Millisecond,
		NewsPollInterval:  time.Duration(getEnvAsInt("BANKBOARD_NEWS_POLL_MS", 6000)) * time.Millisecond,
		HeadlineLimit:     getEnvAsInt("BANKBOARD_HEADLINE_LIMIT", 3),
		LogLevel:          getEnv("BANKBOARD_LOG_LEVEL", "info"),
		LogFile:           getEnv("BANKBOARD_LOG_FILE", ""),
		StateFile:         getEnv("BANKBOARD_STATE_FILE", defaultStateFile()),
	}

	if len(cfg.Symbols) == 0 {
		cfg.Symbols = append([]string(nil), DefaultSymbols...)
	}

	return cfg, nil
}

func defaultStateFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "bankboard_state.msgpack"
	}
	return dir + "/bankboard/state.msgpack"
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
