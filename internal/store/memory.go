// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
)

// MemoryBackend keeps collections in process memory. Nothing survives a restart.
type MemoryBackend struct {
	data   sync.Map
	closed atomic.Bool

	// FailWrites makes every Set return an error. Used to exercise
	// write-failure handling.
	FailWrites atomic.Bool
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Get returns a copy of the stored value.
func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}

	val, ok := m.data.Load(key)
	if !ok {
		return nil, ErrNotFound
	}

	src := val.([]byte)
	out := make([]byte, len(src))
	copy(out, src)
	return out, nil
}

// Set stores a copy of value.
func (m *MemoryBackend) Set(_ context.Context, key string, value []byte) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if m.FailWrites.Load() {
		return Error("memory backend: writes disabled")
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data.Store(key, stored)
	return nil
}

// Delete removes key.
func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.data.Delete(key)
	return nil
}

// Keys lists the stored keys in lexical order.
func (m *MemoryBackend) Keys(_ context.Context) ([]string, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}

	var keys []string
	m.data.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	sort.Strings(keys)
	return keys, nil
}

// Ping reports ErrClosed after Close.
func (m *MemoryBackend) Ping(_ context.Context) error {
	if m.closed.Load() {
		return ErrClosed
	}
	return nil
}

// Close marks the backend closed.
func (m *MemoryBackend) Close() error {
	m.closed.Store(true)
	return nil
}
