// Package config loads and validates application configuration. Environment
// variables are the primary source; an optional YAML file (CONFIG_FILE)
// supplies defaults that env vars override.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `yaml:"port"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `yaml:"database_url" validate:"required"`

	// LogLevel controls the minimum log level. Defaults to "info".
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat selects the log handler: "json" for aggregators, "text"
	// for colorized terminal output. Defaults to "json".
	LogFormat string `yaml:"log_format" validate:"oneof=json text"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `yaml:"cors_origins"`

	// DoneCachePath is the sqlite file backing the local done-mark cache.
	// Empty disables the cache.
	DoneCachePath string `yaml:"done_cache_path"`

	// DayOffset shifts the operating date by N days at startup.
	DayOffset int `yaml:"day_offset"`

	// FlushIntervalMS is the autosave debounce window in milliseconds.
	// Zero means the built-in default.
	FlushIntervalMS int `yaml:"flush_interval_ms" validate:"min=0"`
}

// Load reads the optional CONFIG_FILE, overlays environment variables and
// validates the result. Returns an error naming whatever is missing or out
// of range.
func Load() (Config, error) {
	cfg := Config{
		Port:        "8080",
		LogLevel:    "info",
		LogFormat:   "json",
		CORSOrigins: []string{"http://localhost:5173"},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.DoneCachePath = getEnv("DONE_CACHE_PATH", cfg.DoneCachePath)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}

	var err error
	if cfg.DayOffset, err = getEnvInt("DAY_OFFSET", cfg.DayOffset); err != nil {
		return Config{}, err
	}
	if cfg.FlushIntervalMS, err = getEnvInt("FLUSH_INTERVAL_MS", cfg.FlushIntervalMS); err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt parses an integer environment variable, keeping fallback when
// the variable is unset or empty.
func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer, got %q", key, v)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
