// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// upsertQueries writes one collection row per dialect.
var upsertQueries = map[string]string{
	BackendSQLite: `INSERT INTO collections (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
	BackendMySQL: `INSERT INTO collections (name, data, updated_at) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE data = VALUES(data), updated_at = VALUES(updated_at)`,
	BackendPostgres: `INSERT INTO collections (name, data, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
}

// SQLBackend stores collections as rows of the collections table.
type SQLBackend struct {
	db      *sql.DB
	backend string
	closed  atomic.Bool
	ownsDB  bool
}

// OpenSQLBackend opens the database, applies migrations and returns a backend
// that owns the connection.
func OpenSQLBackend(backend, dsn string) (*SQLBackend, error) {
	db, err := NewDB(backend, dsn, DefaultDBConfig())
	if err != nil {
		return nil, err
	}
	if err := Migrate(db, backend); err != nil {
		_ = db.Close()
		return nil, err
	}
	b := NewSQLBackend(db, backend)
	b.ownsDB = true
	return b, nil
}

// NewSQLBackend wraps an already migrated database. The caller keeps
// ownership of db.
func NewSQLBackend(db *sql.DB, backend string) *SQLBackend {
	return &SQLBackend{db: db, backend: backend}
}

// DB returns the underlying connection pool.
func (s *SQLBackend) DB() *sql.DB {
	return s.db
}

// Dialect returns the backend type.
func (s *SQLBackend) Dialect() string {
	return s.backend
}

func (s *SQLBackend) placeholder() string {
	if s.backend == BackendPostgres {
		return "$1"
	}
	return "?"
}

// Get reads a collection row.
func (s *SQLBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM collections WHERE name = "+s.placeholder(), key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading collection %q: %w", key, err)
	}
	return data, nil
}

// Set upserts a collection row.
func (s *SQLBackend) Set(ctx context.Context, key string, value []byte) error {
	if s.closed.Load() {
		return ErrClosed
	}

	query, ok := upsertQueries[s.backend]
	if !ok {
		return fmt.Errorf("unsupported sql backend %q", s.backend)
	}
	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("writing collection %q: %w", key, err)
	}
	return nil
}

// Delete removes a collection row.
func (s *SQLBackend) Delete(ctx context.Context, key string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM collections WHERE name = "+s.placeholder(), key); err != nil {
		return fmt.Errorf("deleting collection %q: %w", key, err)
	}
	return nil
}

// Keys lists collection names in lexical order.
func (s *SQLBackend) Keys(ctx context.Context) ([]string, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, "SELECT name FROM collections ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Ping checks the database connection.
func (s *SQLBackend) Ping(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.db.PingContext(ctx)
}

// Close closes the database if the backend opened it.
func (s *SQLBackend) Close() error {
	if s.closed.Swap(true) || !s.ownsDB {
		return nil
	}
	return s.db.Close()
}
