// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/olegiv/newsroom/internal/metrics"
	"github.com/olegiv/newsroom/internal/util"
)

// Delivery configuration constants
const (
	MaxAttempts    = 3                // Maximum number of delivery attempts
	InitialBackoff = 2 * time.Second  // Initial backoff delay
	MaxBackoff     = time.Minute      // Maximum backoff delay
	RequestTimeout = 10 * time.Second // HTTP request timeout
	MaxResponseLen = 4 * 1024         // Maximum response body kept for logging
	UserAgent      = "newsroom/1.0"   // User-Agent header value
)

// DeliveryResult represents the result of a delivery attempt.
type DeliveryResult struct {
	Success      bool
	StatusCode   int
	ResponseBody string
	Error        error
	ShouldRetry  bool
}

var httpClient = &http.Client{
	Timeout: RequestTimeout,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

// SafeClient returns a delivery client that refuses to connect to private
// or reserved addresses, including ones reached through DNS rebinding.
func SafeClient() *http.Client {
	dialer := &net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}
	return &http.Client{
		Timeout: RequestTimeout,
		Transport: &http.Transport{
			DialContext:         util.SSRFSafeDialContext(dialer),
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// ValidateTargets checks every target URL against private address ranges.
func ValidateTargets(targets []Target) error {
	for _, t := range targets {
		if err := util.ValidateWebhookURL(t.URL); err != nil {
			return fmt.Errorf("webhook target %q: %w", t.URL, err)
		}
	}
	return nil
}

// processDelivery sends a delivery, retrying retryable failures with
// exponential backoff until maxAttempts is reached.
func (d *Dispatcher) processDelivery(ctx context.Context, delivery *QueuedDelivery) {
	for attempt := 1; ; attempt++ {
		result := d.attemptDelivery(ctx, delivery)
		if result.Success {
			metrics.RecordWebhook(delivery.Event, "delivered")
			d.logger.Info("webhook delivered",
				"delivery_id", delivery.ID,
				"event_type", delivery.Event,
				"status_code", result.StatusCode,
				"attempt", attempt)
			return
		}

		if !result.ShouldRetry || attempt >= d.maxAttempts {
			metrics.RecordWebhook(delivery.Event, "failed")
			d.logger.Warn("webhook delivery failed",
				"delivery_id", delivery.ID,
				"event_type", delivery.Event,
				"attempts", attempt,
				"status_code", result.StatusCode,
				"error", result.Error)
			return
		}

		backoff := calculateBackoff(d.initialBackoff, attempt)
		d.logger.Info("webhook delivery scheduled for retry",
			"delivery_id", delivery.ID,
			"attempt", attempt,
			"backoff", backoff.String(),
			"error", result.Error)

		select {
		case <-d.done:
			return
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}

// attemptDelivery performs the actual HTTP POST request.
func (d *Dispatcher) attemptDelivery(ctx context.Context, delivery *QueuedDelivery) DeliveryResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, delivery.URL, bytes.NewReader(delivery.Payload))
	if err != nil {
		return DeliveryResult{
			Error:       fmt.Errorf("failed to create request: %w", err),
			ShouldRetry: false,
		}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("X-Webhook-Event", delivery.Event)
	req.Header.Set("X-Webhook-Delivery-ID", delivery.ID)
	if delivery.Secret != "" {
		req.Header.Set("X-Webhook-Signature", GenerateSignature(delivery.Payload, delivery.Secret))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return DeliveryResult{
			Error:       fmt.Errorf("request failed: %w", err),
			ShouldRetry: true,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return DeliveryResult{Success: true, StatusCode: resp.StatusCode, ResponseBody: string(body)}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return DeliveryResult{
			StatusCode:   resp.StatusCode,
			ResponseBody: string(body),
			Error:        fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			ShouldRetry:  resp.StatusCode == http.StatusRequestTimeout || resp.StatusCode == http.StatusTooManyRequests,
		}
	default:
		return DeliveryResult{
			StatusCode:   resp.StatusCode,
			ResponseBody: string(body),
			Error:        fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			ShouldRetry:  true,
		}
	}
}

// calculateBackoff returns initial * 2^(attempt-1), capped at MaxBackoff.
func calculateBackoff(initial time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}
	backoff := time.Duration(float64(initial) * math.Pow(2, float64(attempt-1)))
	if backoff > MaxBackoff {
		backoff = MaxBackoff
	}
	return backoff
}
