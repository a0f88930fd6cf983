// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Options selects and configures a backend.
type Options struct {
	// Backend is one of memory, sqlite, mysql, postgres or redis.
	Backend string

	// DBPath is the SQLite database file.
	DBPath string

	// DSN is the MySQL or Postgres connection string.
	DSN string

	// RedisURL is the Redis connection URL.
	RedisURL string

	// Prefix is the Redis key prefix.
	Prefix string
}

// Open creates the backend described by opts.
func Open(opts Options) (Backend, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryBackend(), nil
	case BackendSQLite, "":
		if dir := filepath.Dir(opts.DBPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("creating data directory: %w", err)
			}
		}
		return OpenSQLBackend(BackendSQLite, opts.DBPath)
	case BackendMySQL, BackendPostgres:
		return OpenSQLBackend(opts.Backend, opts.DSN)
	case BackendRedis:
		return NewRedisBackendFromURL(opts.RedisURL, opts.Prefix)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
