// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/repository"
	"github.com/olegiv/newsroom/internal/webhook"
)

// NotificationService delivers in-app notifications to users.
type NotificationService struct {
	repo   *repository.NotificationRepository
	events Publisher
	logger *slog.Logger
	now    func() time.Time
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo *repository.NotificationRepository, events Publisher, logger *slog.Logger) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{repo: repo, events: events, logger: logger, now: time.Now}
}

// Notify stores a new unread notification for userID.
func (s *NotificationService) Notify(ctx context.Context, userID, message, kind string) model.Notification {
	n := model.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		Type:      kind,
		CreatedAt: s.now().UTC(),
	}
	s.repo.Prepend(ctx, n)

	publish(ctx, s.events, s.logger, webhook.EventNotificationCreated, webhook.NotificationEventData{
		ID:      n.ID,
		UserID:  n.UserID,
		Type:    n.Type,
		Message: n.Message,
	})
	return n
}

// ForUser returns the notifications of the signed-in user, newest first.
func (s *NotificationService) ForUser(actor *model.User) ([]model.Notification, error) {
	if actor == nil {
		return nil, ErrLoginRequired
	}
	return s.repo.ForUser(actor.ID), nil
}

// UnreadCount returns how many notifications of actor are unread.
func (s *NotificationService) UnreadCount(actor *model.User) int {
	if actor == nil {
		return 0
	}
	count := 0
	for _, n := range s.repo.ForUser(actor.ID) {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// MarkRead marks a notification as read. Only its recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, actor *model.User, id string) (model.Notification, error) {
	if actor == nil {
		return model.Notification{}, ErrLoginRequired
	}
	return s.repo.Update(ctx, id, func(n *model.Notification) error {
		if n.UserID != actor.ID {
			return ErrForbidden
		}
		n.IsRead = true
		return nil
	})
}

// PruneRead deletes read notifications older than retention.
func (s *NotificationService) PruneRead(ctx context.Context, retention time.Duration) int {
	removed := s.repo.PruneRead(ctx, s.now().Add(-retention))
	if removed > 0 {
		s.logger.Info("pruned read notifications", "count", removed, "retention", retention.String())
	}
	return removed
}
