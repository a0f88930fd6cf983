// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package repository holds the in-memory collections of the newsroom and
// writes each one back to the store after every change.
package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/olegiv/newsroom/internal/store"
)

// ErrNotFound is returned by mutations that address a missing entity.
var ErrNotFound = errors.New("not found")

// Collection is an ordered list of entities persisted under one store key.
// Every mutation, including its save, runs under the collection lock.
type Collection[T any] struct {
	key   string
	store *store.Store
	idOf  func(*T) string
	clone func(T) T

	mu    sync.Mutex
	items []T
}

// NewCollection loads key from s, using defaults when nothing usable is stored.
// idOf extracts the entity id; clone, when set, deep-copies entities that
// contain slices or pointers.
func NewCollection[T any](ctx context.Context, s *store.Store, key string, defaults []T, idOf func(*T) string, clone func(T) T) *Collection[T] {
	return &Collection[T]{
		key:   key,
		store: s,
		idOf:  idOf,
		clone: clone,
		items: store.Load(ctx, s, key, defaults),
	}
}

func (c *Collection[T]) copyOf(item T) T {
	if c.clone != nil {
		return c.clone(item)
	}
	return item
}

func (c *Collection[T]) indexOf(id string) int {
	for i := range c.items {
		if c.idOf(&c.items[i]) == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) save(ctx context.Context) {
	c.store.Save(ctx, c.key, c.items)
}

// Key returns the store key of the collection.
func (c *Collection[T]) Key() string {
	return c.key
}

// Len returns the number of entities.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// All returns a copy of every entity in collection order.
func (c *Collection[T]) All() []T {
	return c.Filter(nil)
}

// Filter returns copies of the entities matching keep, in collection order.
// A nil keep matches everything.
func (c *Collection[T]) Filter(keep func(*T) bool) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, 0, len(c.items))
	for i := range c.items {
		if keep == nil || keep(&c.items[i]) {
			out = append(out, c.copyOf(c.items[i]))
		}
	}
	return out
}

// Get returns the entity with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	return c.Find(func(item *T) bool { return c.idOf(item) == id })
}

// Find returns the first entity matching match.
func (c *Collection[T]) Find(match func(*T) bool) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if match(&c.items[i]) {
			return c.copyOf(c.items[i]), true
		}
	}
	var zero T
	return zero, false
}

// Prepend inserts item at the head of the collection.
func (c *Collection[T]) Prepend(ctx context.Context, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append([]T{c.copyOf(item)}, c.items...)
	c.save(ctx)
}

// Append adds item at the tail of the collection.
func (c *Collection[T]) Append(ctx context.Context, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append(c.items, c.copyOf(item))
	c.save(ctx)
}

// Update applies fn to the entity with the given id and saves the collection.
// If fn returns an error nothing is changed.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	i := c.indexOf(id)
	if i < 0 {
		return zero, ErrNotFound
	}

	updated := c.copyOf(c.items[i])
	if err := fn(&updated); err != nil {
		return zero, err
	}
	c.items[i] = updated
	c.save(ctx)
	return c.copyOf(updated), nil
}

// Delete removes the entity with the given id. guard, when set, may veto the
// removal by returning an error.
func (c *Collection[T]) Delete(ctx context.Context, id string, guard func(*T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	if guard != nil {
		if err := guard(&c.items[i]); err != nil {
			return err
		}
	}

	c.items = append(c.items[:i], c.items[i+1:]...)
	c.save(ctx)
	return nil
}

// Mutate replaces the whole list with the result of fn and saves it.
// If fn returns an error nothing is changed.
func (c *Collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	working := make([]T, len(c.items))
	for i := range c.items {
		working[i] = c.copyOf(c.items[i])
	}

	next, err := fn(working)
	if err != nil {
		return err
	}
	c.items = next
	c.save(ctx)
	return nil
}

// Apply is Mutate for changes that cannot fail.
func (c *Collection[T]) Apply(ctx context.Context, fn func([]T) []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	working := make([]T, len(c.items))
	for i := range c.items {
		working[i] = c.copyOf(c.items[i])
	}
	c.items = fn(working)
	c.save(ctx)
}

// Value is a single persisted document, such as the site configuration.
type Value[T any] struct {
	key   string
	store *store.Store
	clone func(T) T

	mu    sync.Mutex
	value T
}

// NewValue loads key from s, using def when nothing usable is stored.
func NewValue[T any](ctx context.Context, s *store.Store, key string, def T, clone func(T) T) *Value[T] {
	return &Value[T]{
		key:   key,
		store: s,
		clone: clone,
		value: store.Load(ctx, s, key, def),
	}
}

func (v *Value[T]) copyOf(val T) T {
	if v.clone != nil {
		return v.clone(val)
	}
	return val
}

// Get returns a copy of the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.copyOf(v.value)
}

// Update applies fn to a copy of the value, stores the result and saves it.
// If fn returns an error nothing is changed.
func (v *Value[T]) Update(ctx context.Context, fn func(*T) error) (T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	next := v.copyOf(v.value)
	if err := fn(&next); err != nil {
		var zero T
		return zero, err
	}
	v.value = next
	v.store.Save(ctx, v.key, v.value)
	return v.copyOf(next), nil
}
