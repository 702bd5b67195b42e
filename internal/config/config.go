// Package config provides configuration loading using koanf.
// Precedence: environment variables, then compiled defaults.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/aelexs/app3/internal/domain"
)

// Config holds all service configuration.
type Config struct {
	// Environment identifier: "local", "dev", "prod"
	Environment string `koanf:"environment"`

	Log      LogConfig      `koanf:"log"`
	HTTP     HTTPConfig     `koanf:"http"`
	Shutdown ShutdownConfig `koanf:"shutdown"`

	// OpenTelemetry configuration
	OTEL OTELConfig `koanf:"otel"`
}

// LogConfig holds structured logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// HTTPConfig holds the listener configuration.
type HTTPConfig struct {
	Port int `koanf:"port"`
}

// ShutdownConfig holds graceful shutdown tuning.
type ShutdownConfig struct {
	DrainDelay time.Duration `koanf:"drain_delay"`
}

// OTELConfig holds OpenTelemetry configuration.
type OTELConfig struct {
	Endpoint string `koanf:"endpoint"` // Empty disables OTLP export
}

// defaults returns a Config with compiled default values.
func defaults() *Config {
	return &Config{
		Environment: "local",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		HTTP: HTTPConfig{
			Port: domain.DefaultHTTPPort,
		},
		Shutdown: ShutdownConfig{
			DrainDelay: domain.ShutdownDrainDelay,
		},
	}
}

// envKeys maps each environment variable the service reads to its koanf key.
// Every other variable in the process environment is ignored.
var envKeys = map[string]string{
	"ENVIRONMENT":          "environment",
	"LOG_LEVEL":            "log.level",
	"LOG_FORMAT":           "log.format",
	"HTTP_PORT":            "http.port",
	"SHUTDOWN_DRAIN_DELAY": "shutdown.drain_delay",
	"OTEL_ENDPOINT":        "otel.endpoint",
}

// envKey maps a known environment variable to its koanf key path.
// Unknown variables return "" so the env provider skips them.
func envKey(name, value string) (string, any) {
	key, ok := envKeys[strings.ToUpper(name)]
	if !ok {
		return "", nil
	}
	return key, value
}

// Load loads configuration following the precedence:
// 1. Environment variables (highest)
// 2. Compiled defaults (lowest)
//
// Required keys missing or values out of range cause startup failure.
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	cfg := defaults()

	if err := k.Load(env.ProviderWithValue("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks value ranges and environment-specific required keys.
func validate(cfg *Config) error {
	if cfg.HTTP.Port < domain.MinPort || cfg.HTTP.Port > domain.MaxPort {
		return fmt.Errorf("%w: http.port=%d", domain.ErrConfigInvalid, cfg.HTTP.Port)
	}
	if cfg.Shutdown.DrainDelay < 0 {
		return fmt.Errorf("%w: shutdown.drain_delay=%s", domain.ErrConfigInvalid, cfg.Shutdown.DrainDelay)
	}

	if cfg.IsProd() && cfg.OTEL.Endpoint == "" {
		return fmt.Errorf("%w: otel.endpoint", domain.ErrConfigRequired)
	}

	return nil
}

// IsProd returns true if running in production environment.
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}
