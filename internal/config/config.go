// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

// Package config handles application configuration with layered sources:
// built-in defaults, an optional YAML file, and environment variables,
// in increasing order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Store    StoreConfig    `koanf:"store"`
	TMDB     TMDBConfig     `koanf:"tmdb"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// StoreConfig selects and configures the key-value backend.
type StoreConfig struct {
	// Backend is "badger" for persistent storage or "memory" for an
	// ephemeral in-process store.
	Backend string `koanf:"backend"`
	// Path is the BadgerDB directory. Ignored by the memory backend.
	Path string `koanf:"path"`
	// Key is the store key the series collection document lives under.
	Key string `koanf:"key"`
}

// TMDBConfig configures the metadata lookup proxy.
type TMDBConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
	// CircuitBreaker enables fail-fast behavior when the provider is
	// persistently unhealthy.
	CircuitBreaker bool `koanf:"circuit_breaker"`
}

// SecurityConfig controls CORS and rate limiting.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8787,
			Timeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Backend: "badger",
			Path:    "/data/showshelf",
			Key:     "series",
		},
		TMDB: TMDBConfig{
			APIKey:         "",
			BaseURL:        "https://api.themoviedb.org/3",
			Timeout:        30 * time.Second,
			CircuitBreaker: false,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks configuration invariants that would otherwise surface
// as confusing failures at runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}

	switch c.Store.Backend {
	case "badger":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the badger backend")
		}
	case "memory":
		// No path needed.
	default:
		return fmt.Errorf("store.backend must be one of: badger, memory; got %q", c.Store.Backend)
	}
	if strings.TrimSpace(c.Store.Key) == "" {
		return fmt.Errorf("store.key must not be empty")
	}

	if c.TMDB.BaseURL == "" {
		return fmt.Errorf("tmdb.base_url must not be empty")
	}
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("tmdb.timeout must be positive, got %s", c.TMDB.Timeout)
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_reqs must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("security.cors_origins must not be empty")
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("logging.level must be a valid zerolog level, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be one of: json, console; got %q", c.Logging.Format)
	}

	return nil
}

// Addr returns the listen address in host:port form.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
