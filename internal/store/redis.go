// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores each collection as a plain Redis string under a key prefix.
type RedisBackend struct {
	client *redis.Client
	prefix string
	closed atomic.Bool
}

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	// Prefix is prepended to all keys (e.g., "newsroom:")
	Prefix string

	// PoolSize is the maximum number of connections (0 = use default)
	PoolSize int

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// DefaultRedisOptions returns sensible defaults.
func DefaultRedisOptions() RedisOptions {
	return RedisOptions{
		Prefix:         "newsroom:",
		PoolSize:       10,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   3 * time.Second,
	}
}

// NewRedisBackend connects to Redis and verifies the connection.
func NewRedisBackend(opts RedisOptions) (*RedisBackend, error) {
	if opts.URL == "" {
		return nil, errors.New("redis URL is required")
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}
	if opts.PoolSize > 0 {
		redisOpts.PoolSize = opts.PoolSize
	}
	if opts.ConnectTimeout > 0 {
		redisOpts.DialTimeout = opts.ConnectTimeout
	}
	if opts.ReadTimeout > 0 {
		redisOpts.ReadTimeout = opts.ReadTimeout
	}
	if opts.WriteTimeout > 0 {
		redisOpts.WriteTimeout = opts.WriteTimeout
	}

	client := redis.NewClient(redisOpts)

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisBackend{client: client, prefix: opts.Prefix}, nil
}

// NewRedisBackendFromURL creates a Redis backend from a URL with default options.
func NewRedisBackendFromURL(url, prefix string) (*RedisBackend, error) {
	opts := DefaultRedisOptions()
	opts.URL = url
	if prefix != "" {
		opts.Prefix = prefix
	}
	return NewRedisBackend(opts)
}

func (r *RedisBackend) prefixKey(key string) string {
	return r.prefix + key
}

// Get retrieves a collection.
func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}

	val, err := r.client.Get(ctx, r.prefixKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

// Set stores a collection without expiry.
func (r *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	if r.closed.Load() {
		return ErrClosed
	}
	return r.client.Set(ctx, r.prefixKey(key), value, 0).Err()
}

// Delete removes a collection.
func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	if r.closed.Load() {
		return ErrClosed
	}
	return r.client.Del(ctx, r.prefixKey(key)).Err()
}

// Keys lists collections under the prefix using SCAN.
func (r *RedisBackend) Keys(ctx context.Context) ([]string, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}

	var (
		cursor uint64
		keys   []string
	)
	pattern := r.prefix + "*"

	for {
		batch, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		for _, k := range batch {
			keys = append(keys, strings.TrimPrefix(k, r.prefix))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	sort.Strings(keys)
	return keys, nil
}

// Ping checks the Redis connection.
func (r *RedisBackend) Ping(ctx context.Context) error {
	if r.closed.Load() {
		return ErrClosed
	}
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *RedisBackend) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	return r.client.Close()
}
