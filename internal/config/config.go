// Package config loads service settings from environment variables, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// DataSource selects where observations come from: "embedded" serves the
	// bundled 2000-2021 table; "csv" and "xlsx" read DataPath.
	DataSource string `env:"DATA_SOURCE" envDefault:"embedded"`
	DataPath   string `env:"DATA_PATH"`

	// InflectionThreshold is the year-over-year percent-change magnitude
	// above which a year is flagged.
	InflectionThreshold float64 `env:"INFLECTION_THRESHOLD" envDefault:"15"`

	ChartCacheSize int `env:"CHART_CACHE_SIZE" envDefault:"32"`
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load() // missing .env is fine

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	switch cfg.DataSource {
	case "embedded":
	case "csv", "xlsx":
		if cfg.DataPath == "" {
			return nil, fmt.Errorf("DATA_PATH is required when DATA_SOURCE=%s", cfg.DataSource)
		}
	default:
		return nil, fmt.Errorf("invalid DATA_SOURCE %q (want embedded, csv, or xlsx)", cfg.DataSource)
	}

	if cfg.InflectionThreshold <= 0 {
		return nil, errors.New("INFLECTION_THRESHOLD must be positive")
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.ChartCacheSize <= 0 {
		return nil, errors.New("CHART_CACHE_SIZE must be positive")
	}

	return cfg, nil
}
