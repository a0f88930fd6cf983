// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package repository

import (
	"context"
	"sort"
	"time"

	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/store"
)

// ReportRepository holds reader reports, most recent first.
type ReportRepository struct {
	*Collection[model.ArticleReport]
}

// NewReportRepository loads the reports collection.
func NewReportRepository(ctx context.Context, s *store.Store) *ReportRepository {
	return &ReportRepository{NewCollection(ctx, s, KeyReports, []model.ArticleReport{},
		func(r *model.ArticleReport) string { return r.ID }, nil)}
}

// Triage returns every report with open reports first, each group ordered by
// timestamp descending.
func (r *ReportRepository) Triage() []model.ArticleReport {
	out := r.All()
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := out[i].IsOpen(), out[j].IsOpen()
		if oi != oj {
			return oi
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// NotificationRepository holds user notifications, most recent first.
type NotificationRepository struct {
	*Collection[model.Notification]
}

// NewNotificationRepository loads the notifications collection.
func NewNotificationRepository(ctx context.Context, s *store.Store) *NotificationRepository {
	return &NotificationRepository{NewCollection(ctx, s, KeyNotifications, []model.Notification{},
		func(n *model.Notification) string { return n.ID }, nil)}
}

// ForUser returns the notifications addressed to userID, newest first.
func (r *NotificationRepository) ForUser(userID string) []model.Notification {
	out := r.Filter(func(n *model.Notification) bool { return n.UserID == userID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// PruneRead deletes read notifications created before cutoff and returns
// how many were removed.
func (r *NotificationRepository) PruneRead(ctx context.Context, cutoff time.Time) int {
	removed := 0
	r.Apply(ctx, func(items []model.Notification) []model.Notification {
		kept := items[:0]
		for _, n := range items {
			if n.IsRead && n.CreatedAt.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, n)
		}
		return kept
	})
	return removed
}

// AccessLogRepository is the bounded audit trail, most recent first.
type AccessLogRepository struct {
	*Collection[model.AccessLog]
	capacity int
}

// NewAccessLogRepository loads the access log. A capacity below one keeps
// a single entry.
func NewAccessLogRepository(ctx context.Context, s *store.Store, capacity int) *AccessLogRepository {
	if capacity < 1 {
		capacity = 1
	}
	return &AccessLogRepository{
		Collection: NewCollection(ctx, s, KeyAccessLogs, []model.AccessLog{},
			func(l *model.AccessLog) string { return l.ID }, nil),
		capacity: capacity,
	}
}

// Capacity returns the maximum number of retained entries.
func (r *AccessLogRepository) Capacity() int {
	return r.capacity
}

// Record prepends entry and evicts the oldest entries beyond capacity.
func (r *AccessLogRepository) Record(ctx context.Context, entry model.AccessLog) {
	r.Apply(ctx, func(items []model.AccessLog) []model.AccessLog {
		items = append([]model.AccessLog{entry}, items...)
		if len(items) > r.capacity {
			items = items[:r.capacity]
		}
		return items
	})
}
