// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package repository

import (
	"context"
	"strings"
	"time"

	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/store"
)

// SystemConfigRepository holds the singleton site configuration.
type SystemConfigRepository struct {
	*Value[model.SystemConfig]
}

// NewSystemConfigRepository loads the site configuration.
func NewSystemConfigRepository(ctx context.Context, s *store.Store) *SystemConfigRepository {
	return &SystemConfigRepository{NewValue(ctx, s, KeySystemConfig, DefaultSystemConfig(),
		model.SystemConfig.Clone)}
}

func cloneUser(u model.User) model.User {
	if u.SocialLinks != nil {
		links := *u.SocialLinks
		u.SocialLinks = &links
	}
	return u
}

// UserRepository holds the accounts of the mock auth directory.
type UserRepository struct {
	*Collection[model.User]
}

// NewUserRepository loads the users collection.
func NewUserRepository(ctx context.Context, s *store.Store) *UserRepository {
	return &UserRepository{NewCollection(ctx, s, KeyUsers, DefaultUsers(),
		func(u *model.User) string { return u.ID }, cloneUser)}
}

// ByEmail returns the user with the given email, compared case-insensitively.
func (r *UserRepository) ByEmail(email string) (model.User, bool) {
	return r.Find(func(u *model.User) bool { return strings.EqualFold(u.Email, email) })
}

// Repositories groups every collection of the newsroom.
type Repositories struct {
	Articles      *ArticleRepository
	Pages         *PageRepository
	Events        *EventRepository
	Comments      *CommentRepository
	Reports       *ReportRepository
	Notifications *NotificationRepository
	Poll          *PollRepository
	Messages      *MessageRepository
	AccessLogs    *AccessLogRepository
	Subscribers   *SubscriberRepository
	SystemConfig  *SystemConfigRepository
	Users         *UserRepository
	Reactions     *ReactionLedger
}

// Options configures repository construction.
type Options struct {
	// AccessLogCap bounds the audit trail. Zero means DefaultAccessLogCap.
	AccessLogCap int

	// Now dates the default articles. Zero means time.Now.
	Now time.Time
}

// DefaultAccessLogCap is the number of audit entries kept.
const DefaultAccessLogCap = 200

// New loads every collection from s. Collections missing from the store are
// initialized from their defaults and written on first change.
func New(ctx context.Context, s *store.Store, opts Options) *Repositories {
	if opts.AccessLogCap == 0 {
		opts.AccessLogCap = DefaultAccessLogCap
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	return &Repositories{
		Articles:      NewArticleRepository(ctx, s, opts.Now),
		Pages:         NewPageRepository(ctx, s),
		Events:        NewEventRepository(ctx, s),
		Comments:      NewCommentRepository(ctx, s),
		Reports:       NewReportRepository(ctx, s),
		Notifications: NewNotificationRepository(ctx, s),
		Poll:          NewPollRepository(ctx, s),
		Messages:      NewMessageRepository(ctx, s),
		AccessLogs:    NewAccessLogRepository(ctx, s, opts.AccessLogCap),
		Subscribers:   NewSubscriberRepository(ctx, s),
		SystemConfig:  NewSystemConfigRepository(ctx, s),
		Users:         NewUserRepository(ctx, s),
		Reactions:     NewReactionLedger(ctx, s),
	}
}
