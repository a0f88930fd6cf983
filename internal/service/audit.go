// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"

	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/repository"
)

// AuditService writes the bounded access log.
// Business logic never reads the log back.
type AuditService struct {
	repo   *repository.AccessLogRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewAuditService creates a new AuditService.
func NewAuditService(repo *repository.AccessLogRepository, logger *slog.Logger) *AuditService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditService{repo: repo, logger: logger, now: time.Now}
}

// Record appends an entry for actor. A nil actor is logged as a guest.
// Unknown actions are dropped.
func (s *AuditService) Record(ctx context.Context, action, details string, actor *model.User) {
	if !model.IsAccessAction(action) {
		s.logger.Warn("ignoring unknown access log action", "action", action)
		return
	}

	s.repo.Record(ctx, model.AccessLog{
		ID:        uuid.NewString(),
		UserID:    actor.UserID(),
		UserName:  actor.DisplayName(),
		Action:    action,
		Details:   details,
		Timestamp: s.now().UTC(),
	})
}

// RecordLogin logs a successful sign-in with the client described by userAgent.
func (s *AuditService) RecordLogin(ctx context.Context, user *model.User, userAgent string) {
	details := fmt.Sprintf("User %s logged in.", user.DisplayName())
	if client := describeClient(userAgent); client != "" {
		details = fmt.Sprintf("User %s logged in from %s.", user.DisplayName(), client)
	}
	s.Record(ctx, model.ActionLogin, details, user)
}

// RecordView logs an article view by actor.
func (s *AuditService) RecordView(ctx context.Context, actor *model.User, title string) {
	if actor == nil {
		s.Record(ctx, model.ActionViewArticle, "Guest viewed article: "+title, nil)
		return
	}
	s.Record(ctx, model.ActionViewArticle, "Viewed article: "+title, actor)
}

// RecordDenied logs a refused request.
func (s *AuditService) RecordDenied(ctx context.Context, actor *model.User, operation string) {
	s.Record(ctx, model.ActionAccessDenied, "Access denied: "+operation, actor)
}

// List returns the access log, newest first. Only the auditor may read it.
func (s *AuditService) List(actor *model.User) ([]model.AccessLog, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.repo.All(), nil
}

// describeClient renders a user agent as "Firefox on Linux (desktop)".
func describeClient(uaString string) string {
	if uaString == "" {
		return ""
	}
	ua := useragent.Parse(uaString)

	browser, os := ua.Name, ua.OS
	if browser == "" {
		browser = "Unknown"
	}
	if os == "" {
		os = "Unknown"
	}

	device := "desktop"
	switch {
	case ua.Mobile:
		device = "mobile"
	case ua.Tablet:
		device = "tablet"
	case ua.Bot:
		device = "bot"
	}
	return fmt.Sprintf("%s on %s (%s)", browser, os, device)
}
