// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics provides Prometheus metrics for the newsroom service.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "newsroom"

var (
	// StoreSaveFailures counts collection writes that failed and were swallowed.
	StoreSaveFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_save_failures_total",
			Help:      "Total number of failed collection saves",
		},
		[]string{"key"},
	)

	// StoreLoadFallbacks counts loads that fell back to defaults because
	// the stored value could not be decoded.
	StoreLoadFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_load_fallbacks_total",
			Help:      "Total number of malformed collections replaced by defaults",
		},
		[]string{"key"},
	)

	// StoreUp tracks backend reachability (1 = reachable, 0 = unreachable).
	StoreUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_up",
			Help:      "Store backend reachability (1 = up, 0 = down)",
		},
	)

	// WorkflowTransitions counts article status changes.
	WorkflowTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_transitions_total",
			Help:      "Total number of article status transitions",
		},
		[]string{"from", "to"},
	)

	// WebhookDeliveries counts outbound webhook attempts by outcome.
	WebhookDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_deliveries_total",
			Help:      "Total number of webhook deliveries",
		},
		[]string{"event", "result"},
	)

	// HTTPRequests counts API requests.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RateLimited counts requests refused by a rate limiter.
	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Total number of requests refused by rate limiting",
		},
		[]string{"scope"},
	)

	// HTTPDuration measures API request latency.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordSaveFailure records a swallowed store write error.
func RecordSaveFailure(key string) {
	StoreSaveFailures.WithLabelValues(key).Inc()
}

// RecordLoadFallback records a malformed collection.
func RecordLoadFallback(key string) {
	StoreLoadFallbacks.WithLabelValues(key).Inc()
}

// SetStoreUp sets the backend reachability gauge.
func SetStoreUp(up bool) {
	if up {
		StoreUp.Set(1)
		return
	}
	StoreUp.Set(0)
}

// RecordTransition records an article status change.
func RecordTransition(from, to string) {
	WorkflowTransitions.WithLabelValues(from, to).Inc()
}

// RecordWebhook records the outcome of a webhook delivery.
func RecordWebhook(event, result string) {
	WebhookDeliveries.WithLabelValues(event, result).Inc()
}

// RecordRateLimited records a refused request. scope is "api" or "login".
func RecordRateLimited(scope string) {
	RateLimited.WithLabelValues(scope).Inc()
}

// RecordRequest records a served HTTP request.
func RecordRequest(method, route string, status int, seconds float64) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(seconds)
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
