// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/olegiv/newsroom/internal/metrics"
)

// Store loads and saves JSON-encoded collections on top of a Backend.
// Read failures fall back to defaults and write failures are logged and
// swallowed, so callers never see storage errors.
type Store struct {
	backend Backend
	logger  *slog.Logger

	mu      sync.Mutex
	pending map[string]error
}

// New creates a Store over backend.
func New(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: backend,
		logger:  logger,
		pending: make(map[string]error),
	}
}

// Load returns the collection stored under key, or fallback when the key is
// absent, unreadable or holds a value that does not decode as T.
func Load[T any](ctx context.Context, s *Store, key string, fallback T) T {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("reading collection failed, using defaults", "key", key, "error", err)
			metrics.RecordLoadFallback(key)
		}
		return fallback
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		s.logger.Warn("malformed collection, using defaults", "key", key, "error", err)
		metrics.RecordLoadFallback(key)
		return fallback
	}
	return value
}

// Save encodes value and writes it under key. A failure is logged, counted
// and remembered in Pending; it is never returned and never retried.
func (s *Store) Save(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err == nil {
		err = s.backend.Set(ctx, key, data)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Error("saving collection failed", "key", key, "error", err)
		metrics.RecordSaveFailure(key)
		s.pending[key] = err
		return
	}
	delete(s.pending, key)
}

// Delete removes a collection. Errors are logged and swallowed.
func (s *Store) Delete(ctx context.Context, key string) {
	if err := s.backend.Delete(ctx, key); err != nil {
		s.logger.Error("deleting collection failed", "key", key, "error", err)
	}
}

// Pending lists the keys whose most recent save failed.
func (s *Store) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.pending))
	for k := range s.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Ping checks the backend and updates the reachability gauge.
func (s *Store) Ping(ctx context.Context) error {
	err := s.backend.Ping(ctx)
	metrics.SetStoreUp(err == nil)
	return err
}

// Keys lists stored collection keys.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	return s.backend.Keys(ctx)
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
