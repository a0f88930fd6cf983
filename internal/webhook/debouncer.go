// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"context"
	"sync"
	"time"
)

// DebounceConfig holds debouncer configuration.
type DebounceConfig struct {
	// Interval is the quiet period after which a pending event is sent.
	Interval time.Duration
	// MaxWait bounds how long a repeatedly updated event may be held.
	MaxWait time.Duration
}

// DefaultDebounceConfig returns default debounce configuration.
func DefaultDebounceConfig() DebounceConfig {
	return DebounceConfig{
		Interval: time.Second,
		MaxWait:  5 * time.Second,
	}
}

type pendingEvent struct {
	event     *Event
	timer     *time.Timer
	firstSeen time.Time
}

// Debouncer coalesces bursts of events about the same entity, such as an
// article saved several times in a row, into a single delivery.
type Debouncer struct {
	dispatcher *Dispatcher
	config     DebounceConfig
	pending    map[string]*pendingEvent
	mu         sync.Mutex
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewDebouncer creates a new event debouncer.
func NewDebouncer(dispatcher *Dispatcher, config DebounceConfig) *Debouncer {
	ctx, cancel := context.WithCancel(context.Background())
	return &Debouncer{
		dispatcher: dispatcher,
		config:     config,
		pending:    make(map[string]*pendingEvent),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// eventKey identifies events that may be merged: same type and same entity.
func eventKey(event *Event) string {
	if e, ok := event.Data.(Entity); ok {
		return event.Type + ":" + e.EntityID()
	}
	return event.Type
}

// Dispatch holds event for the debounce interval. A newer event with the
// same key replaces the held one and restarts the interval.
func (d *Debouncer) Dispatch(_ context.Context, event *Event) error {
	key := eventKey(event)
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.pending[key]; ok {
		existing.event = event
		if now.Sub(existing.firstSeen) >= d.config.MaxWait {
			d.dispatchLocked(key)
			return nil
		}
		existing.timer.Reset(d.config.Interval)
		return nil
	}

	pe := &pendingEvent{event: event, firstSeen: now}
	pe.timer = time.AfterFunc(d.config.Interval, func() {
		d.mu.Lock()
		d.dispatchLocked(key)
		d.mu.Unlock()
	})
	d.pending[key] = pe
	return nil
}

// dispatchLocked must be called with d.mu held.
func (d *Debouncer) dispatchLocked(key string) {
	pe, ok := d.pending[key]
	if !ok {
		return
	}
	pe.timer.Stop()
	delete(d.pending, key)

	d.wg.Add(1)
	go func(event *Event) {
		defer d.wg.Done()
		if err := d.dispatcher.Dispatch(d.ctx, event); err != nil {
			d.dispatcher.logger.Error("failed to dispatch debounced event",
				"error", err,
				"event_type", event.Type)
		}
	}(pe.event)
}

// Flush immediately dispatches all pending events.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key := range d.pending {
		d.dispatchLocked(key)
	}
}

// Stop flushes pending events and waits for them to be queued.
func (d *Debouncer) Stop() {
	d.Flush()
	d.wg.Wait()
	d.cancel()
}

// PendingCount returns the number of held events.
func (d *Debouncer) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// DispatchEvent is a convenience method to dispatch an event with debouncing.
func (d *Debouncer) DispatchEvent(ctx context.Context, eventType string, data any) error {
	return d.Dispatch(ctx, NewEvent(eventType, data))
}
