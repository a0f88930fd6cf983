// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/newsroom.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/newsroom.db")
	}
	if cfg.StoreBackend != "sqlite" {
		t.Errorf("StoreBackend = %q, want sqlite", cfg.StoreBackend)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q, want localhost:8080", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}
	if cfg.AccessLogCap != 200 {
		t.Errorf("AccessLogCap = %d, want 200", cfg.AccessLogCap)
	}
	if len(cfg.EditorIDs) != 1 || cfg.EditorIDs[0] != "2" {
		t.Errorf("EditorIDs = %v, want [2]", cfg.EditorIDs)
	}
	if cfg.NotificationRetention != 720*time.Hour {
		t.Errorf("NotificationRetention = %v, want 720h", cfg.NotificationRetention)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" || cfg.ChatEnabled() {
		t.Errorf("OpenAIModel = %q, ChatEnabled = %v", cfg.OpenAIModel, cfg.ChatEnabled())
	}
	if cfg.CSRFEnabled {
		t.Error("CSRFEnabled = true, want false")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "NEWSROOM_ENV", "production")
	setEnv(t, "NEWSROOM_SERVER_HOST", "0.0.0.0")
	setEnv(t, "NEWSROOM_SERVER_PORT", "3000")
	setEnv(t, "NEWSROOM_STORE_BACKEND", "redis")
	setEnv(t, "NEWSROOM_REDIS_URL", "redis://localhost:6379/0")
	setEnv(t, "NEWSROOM_EDITOR_IDS", "2,3")
	setEnv(t, "NEWSROOM_WEBHOOK_URLS", "https://a.example/hook,https://b.example/hook")
	setEnv(t, "NEWSROOM_NOTIFICATION_RETENTION", "48h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	opts := cfg.StoreOptions()
	if opts.Backend != "redis" || opts.RedisURL != "redis://localhost:6379/0" || opts.Prefix != "newsroom:" {
		t.Errorf("StoreOptions() = %+v", opts)
	}
	if strings.Join(cfg.EditorIDs, ",") != "2,3" {
		t.Errorf("EditorIDs = %v", cfg.EditorIDs)
	}
	if len(cfg.WebhookURLs) != 2 {
		t.Errorf("WebhookURLs = %v, want 2 entries", cfg.WebhookURLs)
	}
	if cfg.NotificationRetention != 48*time.Hour {
		t.Errorf("NotificationRetention = %v", cfg.NotificationRetention)
	}
}

func TestLoad_BackendRequirements(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"mysql without dsn", map[string]string{"NEWSROOM_STORE_BACKEND": "mysql"}, "NEWSROOM_DB_DSN"},
		{"postgres without dsn", map[string]string{"NEWSROOM_STORE_BACKEND": "postgres"}, "NEWSROOM_DB_DSN"},
		{"redis without url", map[string]string{"NEWSROOM_STORE_BACKEND": "redis"}, "NEWSROOM_REDIS_URL"},
		{"unknown backend", map[string]string{"NEWSROOM_STORE_BACKEND": "mongo"}, "NEWSROOM_STORE_BACKEND"},
		{"zero log cap", map[string]string{"NEWSROOM_ACCESS_LOG_CAP": "0"}, "NEWSROOM_ACCESS_LOG_CAP"},
		{"zero rate", map[string]string{"NEWSROOM_RATE_LIMIT": "0"}, "NEWSROOM_RATE_LIMIT"},
		{"postgres with dsn", map[string]string{"NEWSROOM_STORE_BACKEND": "postgres", "NEWSROOM_DB_DSN": "postgres://u@h/db"}, ""},
		{"memory", map[string]string{"NEWSROOM_STORE_BACKEND": "memory"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				setEnv(t, k, v)
			}
			_, err := Load()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Load() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_SessionSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		csrf    bool
		wantErr bool
	}{
		{"csrf without secret", "", true, true},
		{"too short", "short-secret", true, true},
		{"known weak", "change-me-to-32-byte-secret-key!", true, true},
		{"valid with csrf", "Test-Secret-Key-32-Bytes-Long-01", true, false},
		{"short secret without csrf", "short", false, true},
		{"no secret no csrf", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if tt.secret != "" {
				setEnv(t, "NEWSROOM_SESSION_SECRET", tt.secret)
			}
			if tt.csrf {
				setEnv(t, "NEWSROOM_CSRF_ENABLED", "true")
			}
			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := (Config{LogLevel: in}).SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"abcdefghABCDEFGH", false},
		{"abcABC123", true},
		{"abc123!@#", true},
	}
	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.s); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}
