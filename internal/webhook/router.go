// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import "context"

// Router publishes events through the debouncer when their type may be
// coalesced and straight through the dispatcher otherwise.
type Router struct {
	dispatcher *Dispatcher
	debouncer  *Debouncer
	debounced  map[string]bool
}

// NewRouter creates a Router. Events of the debounced types go through
// debouncer; a nil debouncer sends everything directly.
func NewRouter(dispatcher *Dispatcher, debouncer *Debouncer, debounced ...string) *Router {
	r := &Router{
		dispatcher: dispatcher,
		debouncer:  debouncer,
		debounced:  make(map[string]bool, len(debounced)),
	}
	for _, t := range debounced {
		r.debounced[t] = true
	}
	return r
}

// DispatchEvent publishes an event of eventType carrying data.
func (r *Router) DispatchEvent(ctx context.Context, eventType string, data any) error {
	if r.debouncer != nil && r.debounced[eventType] {
		return r.debouncer.DispatchEvent(ctx, eventType, data)
	}
	return r.dispatcher.DispatchEvent(ctx, eventType, data)
}
