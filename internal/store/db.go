// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver for database/sql
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver for database/sql
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

//go:embed migrations/sqlite/*.sql migrations/mysql/*.sql migrations/postgres/*.sql
var migrations embed.FS

// dialect ties a backend type to its database/sql driver and goose dialect.
type dialect struct {
	driver string
	goose  string
	dir    string
}

var dialects = map[string]dialect{
	BackendSQLite:   {driver: "sqlite", goose: "sqlite3", dir: "migrations/sqlite"},
	BackendMySQL:    {driver: "mysql", goose: "mysql", dir: "migrations/mysql"},
	BackendPostgres: {driver: "pgx", goose: "postgres", dir: "migrations/postgres"},
}

// DBConfig holds database connection pool options.
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultDBConfig returns sensible pool defaults.
func DefaultDBConfig() DBConfig {
	return DBConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// sqlitePragmas configure SQLite for concurrent readers and a single writer.
var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA cache_size=-64000",
	"PRAGMA temp_store=MEMORY",
}

// NewDB opens a database for the given backend type. dsn is a file path
// for SQLite and a driver DSN for MySQL and Postgres.
func NewDB(backend, dsn string, cfg DBConfig) (*sql.DB, error) {
	d, ok := dialects[backend]
	if !ok {
		return nil, fmt.Errorf("unsupported sql backend %q", backend)
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if backend == BackendSQLite {
		for _, pragma := range sqlitePragmas {
			if _, err := db.Exec(pragma); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
			}
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// Migrate runs all pending migrations for the backend type.
func Migrate(db *sql.DB, backend string) error {
	d, ok := dialects[backend]
	if !ok {
		return fmt.Errorf("unsupported sql backend %q", backend)
	}

	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.Up(db, d.dir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
