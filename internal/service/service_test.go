// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/repository"
	"github.com/olegiv/newsroom/internal/store"
)

var testNow = time.Date(2025, 10, 24, 9, 0, 0, 0, time.UTC)

type publishedEvent struct {
	Type string
	Data any
}

// fakePublisher records every event it is given.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) DispatchEvent(_ context.Context, eventType string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Data: data})
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func (p *fakePublisher) last() publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

type fixture struct {
	ctx    context.Context
	repos  *repository.Repositories
	svc    *Services
	events *fakePublisher
}

// newFixture builds every service over the default dataset in a memory
// store. Seed articles are dated one hour before testNow; everything the
// services create is dated testNow.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := store.New(store.NewMemoryBackend(), logger)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	repos := repository.New(ctx, s, repository.Options{Now: testNow.Add(-time.Hour)})
	events := &fakePublisher{}
	svc := New(repos, Options{Events: events, Logger: logger})

	clock := func() time.Time { return testNow }
	svc.Notifications.now = clock
	svc.Audit.now = clock
	svc.Workflow.now = clock
	svc.Moderation.now = clock
	svc.Engagement.now = clock

	return &fixture{ctx: ctx, repos: repos, svc: svc, events: events}
}

// user returns a seeded account: "1" auditor, "2" EIC, "3" head, "4" journalist.
func (f *fixture) user(t *testing.T, id string) *model.User {
	t.Helper()
	u, ok := f.repos.Users.Get(id)
	require.True(t, ok, "seed user %s", id)
	return &u
}

func otherJournalist() *model.User {
	return &model.User{ID: "9", Name: "Penny Quill", Role: model.RoleJournalist}
}

func guestUser() *model.User {
	return &model.User{ID: "10", Name: "Gus Reader", Role: model.RoleGuest}
}

func notificationsFor(f *fixture, userID string) []model.Notification {
	return f.repos.Notifications.ForUser(userID)
}

func articleIDs(articles []model.Article) []string {
	ids := make([]string, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
	}
	return ids
}
