package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

type Config struct {
	// Backend selection: "sheets" or "memory".
	Backend string

	// Google Sheets
	SpreadsheetID string

	// Local mirror
	SQLiteDBPath string

	// AMQP (optional; empty URL disables alert publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Forecast
	PrimaryAccount    string
	DaysBack          int
	DaysForward       int
	RecencyWindowDays int
	AlertWindowDays   int
	ReportWindowDays  int
	AlertThreshold    float64

	// Source cache
	CacheTTL time.Duration

	// Worker
	CronSpec string

	// CSV import
	ImportDir     string
	ImportDoneDir string
}

func Load() *Config {
	cfg := &Config{
		Backend: getEnv("OURCASH_BACKEND", "memory"),

		SpreadsheetID: getEnv("OURCASH_SPREADSHEET_ID", ""),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/ourcash.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "ourcash"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "balance_alerts"),

		PrimaryAccount:    getEnv("PRIMARY_ACCOUNT", "Chase Checking"),
		DaysBack:          getEnvInt("FORECAST_DAYS_BACK", 5),
		DaysForward:       getEnvInt("FORECAST_DAYS_FORWARD", 365*2),
		RecencyWindowDays: getEnvInt("RECENCY_WINDOW_DAYS", 10),
		AlertWindowDays:   getEnvInt("ALERT_WINDOW_DAYS", 1),
		ReportWindowDays:  getEnvInt("REPORT_WINDOW_DAYS", 10),
		AlertThreshold:    getEnvFloat("ALERT_THRESHOLD", 1000),

		CacheTTL: getEnvDuration("SOURCE_CACHE_TTL", 5*time.Minute),

		CronSpec: getEnv("FORECAST_CRON", "0 6 * * *"),

		ImportDir:     getEnv("IMPORT_DIR", "./data/incoming"),
		ImportDoneDir: getEnv("IMPORT_DONE_DIR", "./data/incoming/done"),
	}
	return cfg
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	switch c.Backend {
	case "sheets", "memory":
	default:
		errs = append(errs, fmt.Sprintf("invalid backend %q: must be one of [sheets memory]", c.Backend))
	}

	if c.Backend == "sheets" && c.SpreadsheetID == "" {
		errs = append(errs, "spreadsheet ID is required when using the sheets backend")
	}

	if c.SQLiteDBPath == "" {
		errs = append(errs, "SQLite database path cannot be empty")
	} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				errs = append(errs, fmt.Sprintf("cannot create SQLite database directory %q: %v", dir, err))
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL %q: %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme %q: must be amqp or amqps", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.PrimaryAccount == "" {
		errs = append(errs, "primary account cannot be empty")
	}
	if c.DaysBack < 0 {
		errs = append(errs, fmt.Sprintf("invalid days back %d: must not be negative", c.DaysBack))
	}
	if c.DaysForward < 1 {
		errs = append(errs, fmt.Sprintf("invalid days forward %d: must be at least 1", c.DaysForward))
	}
	if c.RecencyWindowDays < 0 {
		errs = append(errs, fmt.Sprintf("invalid recency window %d: must not be negative", c.RecencyWindowDays))
	}
	if c.AlertWindowDays < 0 {
		errs = append(errs, fmt.Sprintf("invalid alert window %d: must not be negative", c.AlertWindowDays))
	}
	if c.ReportWindowDays < 0 {
		errs = append(errs, fmt.Sprintf("invalid report window %d: must not be negative", c.ReportWindowDays))
	}

	if c.CacheTTL < time.Second {
		errs = append(errs, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	}

	if _, err := cron.ParseStandard(c.CronSpec); err != nil {
		errs = append(errs, fmt.Sprintf("invalid cron spec %q: %v", c.CronSpec, err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
