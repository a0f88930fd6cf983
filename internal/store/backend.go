// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store persists named JSON collections in a key-value backend.
package store

import "context"

// Backend is a durable key-value store holding one serialized collection per key.
// All implementations must be safe for concurrent use.
type Backend interface {
	// Get returns the stored bytes, or ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key.
	Keys(ctx context.Context) ([]string, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the backend.
	Close() error
}

// Error represents an error type for store operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotFound indicates the key has never been written.
	ErrNotFound Error = "key not found"

	// ErrClosed indicates the backend has been closed.
	ErrClosed Error = "store closed"
)

// Backend types
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)
