// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/repository"
	"github.com/olegiv/newsroom/internal/webhook"
)

// ErrReportClosed is returned when acting on a report that is no longer open.
var ErrReportClosed = errors.New("report is no longer open")

// ReportInput is a reader complaint about an article.
type ReportInput struct {
	ArticleID string `json:"articleId" validate:"required"`
	Reason    string `json:"reason" validate:"required,max=200"`
	Details   string `json:"details,omitempty" validate:"max=2000"`
}

// ModerationService handles reader reports.
type ModerationService struct {
	reports  *repository.ReportRepository
	articles *repository.ArticleRepository
	notifier *NotificationService
	events   Publisher
	logger   *slog.Logger
	now      func() time.Time
}

// NewModerationService creates a new ModerationService.
func NewModerationService(reports *repository.ReportRepository, articles *repository.ArticleRepository,
	notifier *NotificationService, events Publisher, logger *slog.Logger) *ModerationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModerationService{
		reports:  reports,
		articles: articles,
		notifier: notifier,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

func reportEvent(r model.ArticleReport) webhook.ReportEventData {
	return webhook.ReportEventData{
		ID:        r.ID,
		ArticleID: r.ArticleID,
		Reason:    r.Reason,
		Status:    r.Status,
	}
}

// SubmitReport files an open report. Anonymous readers may report too.
// The article title and slug are copied when the article exists.
func (s *ModerationService) SubmitReport(ctx context.Context, actor *model.User, in ReportInput) (model.ArticleReport, error) {
	in.Reason = sanitizeText(in.Reason)
	in.Details = sanitizeText(in.Details)
	if err := Validate(in); err != nil {
		return model.ArticleReport{}, err
	}

	r := model.ArticleReport{
		ID:         uuid.NewString(),
		ArticleID:  in.ArticleID,
		ReporterID: actor.UserID(),
		Reason:     in.Reason,
		Details:    in.Details,
		Timestamp:  s.now().UTC(),
		Status:     model.ReportStatusOpen,
	}
	if a, ok := s.articles.Get(in.ArticleID); ok {
		r.ArticleTitle = a.Title
		r.ArticleSlug = a.Slug
	}

	s.reports.Prepend(ctx, r)
	s.logger.Info("report submitted", "report_id", r.ID, "article_id", r.ArticleID)
	publish(ctx, s.events, s.logger, webhook.EventReportCreated, reportEvent(r))
	return r, nil
}

// ListReports returns every report, open ones first, newest first.
func (s *ModerationService) ListReports(actor *model.User) ([]model.ArticleReport, error) {
	if !actor.IsPrivileged() {
		return nil, ErrForbidden
	}
	return s.reports.Triage(), nil
}

// closeReport moves an open report to status.
func (s *ModerationService) closeReport(ctx context.Context, id, status string) (model.ArticleReport, error) {
	r, err := s.reports.Update(ctx, id, func(r *model.ArticleReport) error {
		if !r.IsOpen() {
			return ErrReportClosed
		}
		r.Status = status
		return nil
	})
	if err != nil {
		return model.ArticleReport{}, err
	}
	publish(ctx, s.events, s.logger, webhook.EventReportResolved, reportEvent(r))
	return r, nil
}

// DismissReport closes an open report without notifying anyone.
func (s *ModerationService) DismissReport(ctx context.Context, actor *model.User, id string) (model.ArticleReport, error) {
	if !actor.IsPrivileged() {
		return model.ArticleReport{}, ErrForbidden
	}
	r, err := s.closeReport(ctx, id, model.ReportStatusDismissed)
	if err != nil {
		return model.ArticleReport{}, err
	}
	s.logger.Info("report dismissed", "report_id", r.ID, "actor_id", actor.ID)
	return r, nil
}

// NotifyAuthorOfReport sends message to the author of the reported article
// and resolves the report. When the article no longer exists the report is
// still resolved and no notification is sent.
func (s *ModerationService) NotifyAuthorOfReport(ctx context.Context, actor *model.User, id, message string) (model.ArticleReport, error) {
	if !actor.IsPrivileged() {
		return model.ArticleReport{}, ErrForbidden
	}
	message = sanitizeText(message)
	if message == "" {
		return model.ArticleReport{}, invalid("message", "is required")
	}

	r, err := s.closeReport(ctx, id, model.ReportStatusResolved)
	if err != nil {
		return model.ArticleReport{}, err
	}

	a, ok := s.articles.Get(r.ArticleID)
	if !ok {
		s.logger.Warn("reported article is gone, author not notified",
			"report_id", r.ID,
			"article_id", r.ArticleID)
		return r, nil
	}

	s.notifier.Notify(ctx, a.AuthorID, message, model.NotificationWarning)
	s.logger.Info("report resolved", "report_id", r.ID, "author_id", a.AuthorID, "actor_id", actor.ID)
	return r, nil
}
