package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	SQLiteDBPath string

	// AMQP (telemetry signals and trip export queue)
	AMQPURL             string
	AMQPExchange        string
	AMQPTelemetryQueue  string
	AMQPTripExportQueue string

	// Google Sheets trip export
	SheetSpreadsheetID string
	SheetName          string

	// Photo cache
	PhotoCacheSize int
	PhotoCacheTTL  time.Duration
}

// Load reads configuration from the environment, after loading a local .env
// file when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/carrello.db"),

		AMQPURL:             getEnv("AMQP_URL", ""),
		AMQPExchange:        getEnv("AMQP_EXCHANGE", "carrello"),
		AMQPTelemetryQueue:  getEnv("AMQP_TELEMETRY_QUEUE", "telemetry_signals"),
		AMQPTripExportQueue: getEnv("AMQP_TRIP_EXPORT_QUEUE", "trip_exports"),

		SheetSpreadsheetID: getEnv("SHEET_SPREADSHEET_ID", ""),
		SheetName:          getEnv("SHEET_NAME", "Trips"),

		PhotoCacheSize: getEnvInt("PHOTO_CACHE_SIZE", 64),
		PhotoCacheTTL:  getEnvDuration("PHOTO_CACHE_TTL", 10*time.Minute),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if c.SQLiteDBPath == "" {
		errs = append(errs, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPTelemetryQueue == "" {
			errs = append(errs, "AMQP telemetry queue name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPTripExportQueue == "" {
			errs = append(errs, "AMQP trip export queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.SheetSpreadsheetID != "" && c.SheetName == "" {
		errs = append(errs, "sheet name cannot be empty when a spreadsheet ID is provided")
	}

	if c.PhotoCacheSize < 1 {
		errs = append(errs, fmt.Sprintf("invalid photo cache size %d: must be at least 1", c.PhotoCacheSize))
	}
	if c.PhotoCacheTTL < time.Second {
		errs = append(errs, fmt.Sprintf("invalid photo cache TTL %v: must be at least 1 second", c.PhotoCacheTTL))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// ExportEnabled reports whether the Google Sheets trip export is configured.
func (c *Config) ExportEnabled() bool {
	return c.SheetSpreadsheetID != ""
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
