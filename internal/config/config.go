// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the newsroom configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/olegiv/newsroom/internal/store"
)

// knownWeakSecrets contains example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env        string `env:"NEWSROOM_ENV" envDefault:"development"`
	LogLevel   string `env:"NEWSROOM_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"NEWSROOM_LOG_FORMAT" envDefault:"text"`
	ServerHost string `env:"NEWSROOM_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"NEWSROOM_SERVER_PORT" envDefault:"8080"`

	// Store configuration
	StoreBackend string `env:"NEWSROOM_STORE_BACKEND" envDefault:"sqlite"`
	DBPath       string `env:"NEWSROOM_DB_PATH" envDefault:"./data/newsroom.db"`
	DBDSN        string `env:"NEWSROOM_DB_DSN"`
	RedisURL     string `env:"NEWSROOM_REDIS_URL"`
	StorePrefix  string `env:"NEWSROOM_STORE_PREFIX" envDefault:"newsroom:"`

	AccessLogCap int      `env:"NEWSROOM_ACCESS_LOG_CAP" envDefault:"200"`
	EditorIDs    []string `env:"NEWSROOM_EDITOR_IDS" envDefault:"2" envSeparator:","`

	// HTTP protection
	SessionSecret string  `env:"NEWSROOM_SESSION_SECRET"`
	CSRFEnabled   bool    `env:"NEWSROOM_CSRF_ENABLED" envDefault:"false"`
	RateLimit     float64 `env:"NEWSROOM_RATE_LIMIT" envDefault:"10"` // requests per second per IP
	RateBurst     int     `env:"NEWSROOM_RATE_BURST" envDefault:"20"`

	// Outbound webhooks
	WebhookURLs   []string `env:"NEWSROOM_WEBHOOK_URLS" envSeparator:","`
	WebhookSecret string   `env:"NEWSROOM_WEBHOOK_SECRET"`

	NotificationRetention time.Duration `env:"NEWSROOM_NOTIFICATION_RETENTION" envDefault:"720h"`

	// Chat assistant
	OpenAIAPIKey string `env:"NEWSROOM_OPENAI_API_KEY"`
	OpenAIModel  string `env:"NEWSROOM_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// StoreOptions returns the options used to open the persistent store.
func (c Config) StoreOptions() store.Options {
	return store.Options{
		Backend:  c.StoreBackend,
		DBPath:   c.DBPath,
		DSN:      c.DBDSN,
		RedisURL: c.RedisURL,
		Prefix:   c.StorePrefix,
	}
}

// ChatEnabled returns true if an OpenAI key is configured.
func (c Config) ChatEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// LoadDotEnv reads a .env file in the working directory if one exists.
// Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case store.BackendMemory, store.BackendSQLite:
	case store.BackendMySQL, store.BackendPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("NEWSROOM_DB_DSN is required for the %s backend", c.StoreBackend)
		}
	case store.BackendRedis:
		if c.RedisURL == "" {
			return errors.New("NEWSROOM_REDIS_URL is required for the redis backend")
		}
	default:
		return fmt.Errorf("NEWSROOM_STORE_BACKEND %q is not one of memory, sqlite, mysql, postgres, redis", c.StoreBackend)
	}

	if c.AccessLogCap <= 0 {
		return fmt.Errorf("NEWSROOM_ACCESS_LOG_CAP must be positive, got %d", c.AccessLogCap)
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return errors.New("NEWSROOM_RATE_LIMIT and NEWSROOM_RATE_BURST must be positive")
	}

	if c.CSRFEnabled || c.SessionSecret != "" {
		if err := checkSessionSecret(c.SessionSecret); err != nil {
			return err
		}
	}
	return nil
}

func checkSessionSecret(secret string) error {
	if len(secret) < MinSessionSecretLength {
		return fmt.Errorf("NEWSROOM_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(secret))
	}
	for _, weak := range knownWeakSecrets {
		if secret == weak {
			return errors.New("NEWSROOM_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}
	if !hasMinimumEntropy(secret) {
		slog.Warn("NEWSROOM_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes.
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
