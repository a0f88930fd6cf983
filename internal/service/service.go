// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"

	"github.com/olegiv/newsroom/internal/repository"
)

// Publisher sends domain events to outside subscribers.
// *webhook.Dispatcher and *webhook.Debouncer implement it.
type Publisher interface {
	DispatchEvent(ctx context.Context, eventType string, data any) error
}

// publish sends an event when a publisher is configured. Failures are logged
// and never reach the caller.
func publish(ctx context.Context, p Publisher, logger *slog.Logger, eventType string, data any) {
	if p == nil {
		return
	}
	if err := p.DispatchEvent(ctx, eventType, data); err != nil {
		logger.Warn("failed to publish event", "event_type", eventType, "error", err)
	}
}

// Options configures the service layer.
type Options struct {
	// EditorIDs receive a notification for every new submission.
	EditorIDs []string

	// Events receives domain events. Nil disables publishing.
	Events Publisher

	// Responder answers chat messages. Nil selects KeywordResponder.
	Responder Responder

	Logger *slog.Logger
}

// DefaultEditorIDs is the editorial recipient list of a fresh install.
var DefaultEditorIDs = []string{"2"}

// Services groups every service of the newsroom.
type Services struct {
	Notifications *NotificationService
	Audit         *AuditService
	Workflow      *WorkflowService
	Pages         *PageService
	Moderation    *ModerationService
	Search        *SearchService
	Config        *ConfigService
	Engagement    *EngagementService
	Chat          *ChatService
}

// New builds every service over repos.
func New(repos *repository.Repositories, opts Options) *Services {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if len(opts.EditorIDs) == 0 {
		opts.EditorIDs = DefaultEditorIDs
	}

	notifications := NewNotificationService(repos.Notifications, opts.Events, logger)
	audit := NewAuditService(repos.AccessLogs, logger)

	return &Services{
		Notifications: notifications,
		Audit:         audit,
		Workflow:      NewWorkflowService(repos.Articles, repos.Reactions, notifications, opts.Events, opts.EditorIDs, logger),
		Pages:         NewPageService(repos.Pages, logger),
		Moderation:    NewModerationService(repos.Reports, repos.Articles, notifications, opts.Events, logger),
		Search:        NewSearchService(repos.Articles, repos.Pages),
		Config:        NewConfigService(repos.SystemConfig, audit, opts.Events, logger),
		Engagement:    NewEngagementService(repos, logger),
		Chat:          NewChatService(repos.Articles, opts.Responder, logger),
	}
}
