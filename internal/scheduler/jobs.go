// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/newsroom/internal/metrics"
)

// Job names.
const (
	JobPruneNotifications = "prune-notifications"
	JobStoreHealth        = "store-health"
)

// NotificationPruner removes read notifications older than a retention period.
type NotificationPruner interface {
	PruneRead(ctx context.Context, retention time.Duration) int
}

// Pinger reports whether the persistent store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PruneNotificationsJob drops read notifications older than retention every hour.
func PruneNotificationsJob(p NotificationPruner, retention time.Duration, logger *slog.Logger) Job {
	return Job{
		Name:        JobPruneNotifications,
		Description: "Remove read notifications past the retention period",
		Schedule:    "@hourly",
		Run: func(ctx context.Context) error {
			if n := p.PruneRead(ctx, retention); n > 0 {
				logger.Info("pruned read notifications", "count", n, "retention", retention)
			}
			return nil
		},
	}
}

// StoreHealthJob pings the store every minute and exports the result as the
// store up gauge.
func StoreHealthJob(p Pinger) Job {
	return Job{
		Name:        JobStoreHealth,
		Description: "Check that the persistent store is reachable",
		Schedule:    "@every 1m",
		Run: func(ctx context.Context) error {
			err := p.Ping(ctx)
			metrics.SetStoreUp(err == nil)
			if err != nil {
				return fmt.Errorf("pinging store: %w", err)
			}
			return nil
		},
	}
}
