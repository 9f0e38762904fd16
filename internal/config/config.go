package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Persistence
	StorageBackend   string // "file" or "sqlite"
	DataDir          string // file backend: app-local namespace
	SharedDataDir    string // file backend: widget-shared namespace
	SQLiteDBPath     string // sqlite backend: app-local namespace
	SharedSQLitePath string // sqlite backend: widget-shared namespace

	// AMQP signal bus (optional)
	AMQPURL      string
	AMQPExchange string

	// Widget
	WidgetRefreshInterval time.Duration

	// Presentation defaults
	RecentLimit int
}

func Load() *Config {
	return &Config{
		StorageBackend:   getEnv("STORAGE_BACKEND", "file"),
		DataDir:          getEnv("DATA_DIR", "./data/app"),
		SharedDataDir:    getEnv("SHARED_DATA_DIR", "./data/shared"),
		SQLiteDBPath:     getEnv("SQLITE_DB_PATH", "./data/walletlens.db"),
		SharedSQLitePath: getEnv("SHARED_SQLITE_DB_PATH", "./data/walletlens_shared.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "walletlens"),

		WidgetRefreshInterval: getEnvDuration("WIDGET_REFRESH_INTERVAL", 2*time.Minute),

		RecentLimit: getEnvInt("RECENT_LIMIT", 4),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	switch c.StorageBackend {
	case "file":
		if c.DataDir == "" {
			errors = append(errors, "data directory cannot be empty when using file backend")
		}
		if c.SharedDataDir == "" {
			errors = append(errors, "shared data directory cannot be empty when using file backend")
		}
		if c.DataDir != "" && c.DataDir == c.SharedDataDir {
			errors = append(errors, "app and shared data directories must be distinct")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
		if c.SharedSQLitePath == "" {
			errors = append(errors, "shared SQLite database path cannot be empty when using sqlite backend")
		}
		if c.SQLiteDBPath != "" && c.SQLiteDBPath == c.SharedSQLitePath {
			errors = append(errors, "app and shared SQLite database paths must be distinct")
		}
		for _, dbPath := range []string{c.SQLiteDBPath, c.SharedSQLitePath} {
			if dbPath == "" {
				continue
			}
			dir := filepath.Dir(dbPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid storage backend '%s': must be one of [file sqlite]", c.StorageBackend))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if c.WidgetRefreshInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid widget refresh interval %v: must be at least 1 second", c.WidgetRefreshInterval))
	} else if c.WidgetRefreshInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid widget refresh interval %v: must be at most 24 hours", c.WidgetRefreshInterval))
	}

	if c.RecentLimit < 1 {
		errors = append(errors, fmt.Sprintf("invalid recent limit %d: must be at least 1", c.RecentLimit))
	} else if c.RecentLimit > 100 {
		errors = append(errors, fmt.Sprintf("invalid recent limit %d: must be at most 100", c.RecentLimit))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
