// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/newsroom/internal/metrics"
)

// Target is a receiving endpoint. Every event is sent to every target.
type Target struct {
	URL    string
	Secret string
}

// Dispatcher queues events and delivers them on a pool of workers.
// Dispatch never blocks: when the queue is full the delivery is dropped.
type Dispatcher struct {
	targets []Target
	logger  *slog.Logger
	client  *http.Client
	queue   chan *QueuedDelivery
	workers int

	maxAttempts    int
	initialBackoff time.Duration

	wg      sync.WaitGroup
	done    chan struct{}
	mu      sync.RWMutex
	running bool
}

// QueuedDelivery represents a delivery queued for processing.
type QueuedDelivery struct {
	ID      string
	Event   string
	Payload []byte
	URL     string
	Secret  string
}

// Config holds dispatcher configuration.
type Config struct {
	Targets        []Target
	Workers        int           // Number of concurrent delivery workers
	QueueSize      int           // Capacity of the delivery queue
	MaxAttempts    int           // Attempts per delivery before it is dropped
	InitialBackoff time.Duration // Delay before the first retry
	Client         *http.Client  // Defaults to a client with RequestTimeout
}

// DefaultConfig returns default dispatcher configuration.
func DefaultConfig() Config {
	return Config{
		Workers:        3,
		QueueSize:      100,
		MaxAttempts:    MaxAttempts,
		InitialBackoff: InitialBackoff,
	}
}

// NewDispatcher creates a new webhook dispatcher.
func NewDispatcher(logger *slog.Logger, cfg Config) *Dispatcher {
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = def.InitialBackoff
	}
	if cfg.Client == nil {
		cfg.Client = httpClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		targets:        cfg.Targets,
		logger:         logger,
		client:         cfg.Client,
		queue:          make(chan *QueuedDelivery, cfg.QueueSize),
		workers:        cfg.Workers,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		done:           make(chan struct{}),
	}
}

// Start starts the dispatcher workers.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	d.logger.Info("starting webhook dispatcher", "workers", d.workers, "targets", len(d.targets))

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
}

// Stop stops the dispatcher and waits for workers to finish.
// Deliveries still queued are discarded.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	d.logger.Info("stopping webhook dispatcher")
	close(d.done)
	d.wg.Wait()
	d.logger.Info("webhook dispatcher stopped", "discarded", len(d.queue))
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	d.logger.Debug("webhook worker started", "worker_id", id)

	for {
		select {
		case <-d.done:
			d.logger.Debug("webhook worker stopping", "worker_id", id)
			return
		case <-ctx.Done():
			d.logger.Debug("webhook worker context cancelled", "worker_id", id)
			return
		case delivery := <-d.queue:
			d.processDelivery(ctx, delivery)
		}
	}
}

// Dispatch queues event for every target.
func (d *Dispatcher) Dispatch(_ context.Context, event *Event) error {
	if len(d.targets) == 0 {
		return nil
	}

	d.mu.RLock()
	running := d.running
	d.mu.RUnlock()

	if !running {
		d.logger.Warn("dispatcher not running, dropping event", "event_type", event.Type)
		metrics.RecordWebhook(event.Type, "dropped")
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		d.logger.Error("failed to marshal event payload", "error", err, "event_type", event.Type)
		return err
	}

	for _, t := range d.targets {
		qd := &QueuedDelivery{
			ID:      uuid.NewString(),
			Event:   event.Type,
			Payload: payload,
			URL:     t.URL,
			Secret:  t.Secret,
		}

		select {
		case d.queue <- qd:
			d.logger.Debug("delivery queued", "delivery_id", qd.ID, "event_type", event.Type)
		default:
			d.logger.Warn("delivery queue full, dropping delivery",
				"delivery_id", qd.ID,
				"event_type", event.Type,
				"url", t.URL)
			metrics.RecordWebhook(event.Type, "dropped")
		}
	}

	return nil
}

// DispatchEvent is a convenience method to dispatch an event with the given type and data.
func (d *Dispatcher) DispatchEvent(ctx context.Context, eventType string, data any) error {
	return d.Dispatch(ctx, NewEvent(eventType, data))
}

// GenerateSignature generates an HMAC-SHA256 signature for the payload.
func GenerateSignature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature verifies an HMAC-SHA256 signature.
func VerifySignature(payload []byte, signature, secret string) bool {
	return hmac.Equal([]byte(signature), []byte(GenerateSignature(payload, secret)))
}
