// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package repository

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/store"
)

// CommentRepository holds reader comments, most recent first.
type CommentRepository struct {
	*Collection[model.Comment]
}

// NewCommentRepository loads the comments collection.
func NewCommentRepository(ctx context.Context, s *store.Store) *CommentRepository {
	return &CommentRepository{NewCollection(ctx, s, KeyComments, []model.Comment{},
		func(c *model.Comment) string { return c.ID }, nil)}
}

// ForArticle returns comments on articleID, or all comments when it is
// empty, newest first.
func (r *CommentRepository) ForArticle(articleID string) []model.Comment {
	out := r.Filter(func(c *model.Comment) bool { return articleID == "" || c.ArticleID == articleID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func cloneEvent(e model.SchoolEvent) model.SchoolEvent {
	e.SubEvents = slices.Clone(e.SubEvents)
	return e
}

// EventRepository holds the school calendar.
type EventRepository struct {
	*Collection[model.SchoolEvent]
}

// NewEventRepository loads the events collection.
func NewEventRepository(ctx context.Context, s *store.Store) *EventRepository {
	return &EventRepository{NewCollection(ctx, s, KeyEvents, DefaultEvents(),
		func(e *model.SchoolEvent) string { return e.ID }, cloneEvent)}
}

// Chronological returns every event ordered by date ascending.
func (r *EventRepository) Chronological() []model.SchoolEvent {
	out := r.All()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func clonePoll(p model.Poll) model.Poll {
	p.Options = slices.Clone(p.Options)
	return p
}

// PollRepository holds the single active poll.
type PollRepository struct {
	*Value[model.Poll]
}

// NewPollRepository loads the active poll.
func NewPollRepository(ctx context.Context, s *store.Store) *PollRepository {
	return &PollRepository{NewValue(ctx, s, KeyPoll, DefaultPoll(), clonePoll)}
}

// MessageRepository holds contact form messages, most recent first.
type MessageRepository struct {
	*Collection[model.ContactMessage]
}

// NewMessageRepository loads the messages collection.
func NewMessageRepository(ctx context.Context, s *store.Store) *MessageRepository {
	return &MessageRepository{NewCollection(ctx, s, KeyMessages, []model.ContactMessage{},
		func(m *model.ContactMessage) string { return m.ID }, nil)}
}

// SubscriberRepository holds newsletter addresses in subscription order.
type SubscriberRepository struct {
	*Collection[string]
}

// NewSubscriberRepository loads the subscribers collection.
func NewSubscriberRepository(ctx context.Context, s *store.Store) *SubscriberRepository {
	return &SubscriberRepository{NewCollection(ctx, s, KeySubscribers, []string{},
		func(e *string) string { return *e }, nil)}
}

// Add stores email unless it is already subscribed. It reports whether the
// address was added.
func (r *SubscriberRepository) Add(ctx context.Context, email string) bool {
	added := false
	r.Apply(ctx, func(items []string) []string {
		if slices.Contains(items, email) {
			return items
		}
		added = true
		return append(items, email)
	})
	return added
}

// ReactionLedger remembers which identity already reacted to which article
// with which reaction. Claims are grouped per article so that deleting an
// article drops its claims in one step.
type ReactionLedger struct {
	store *store.Store

	mu     sync.Mutex
	claims map[string]map[string]bool // article id -> identity|reaction
}

// NewReactionLedger loads the reactions ledger.
func NewReactionLedger(ctx context.Context, s *store.Store) *ReactionLedger {
	claims := store.Load(ctx, s, KeyReactionsLedger, map[string]map[string]bool{})
	if claims == nil {
		claims = map[string]map[string]bool{}
	}
	return &ReactionLedger{store: s, claims: claims}
}

func claimKey(identity, reaction string) string {
	return identity + "|" + reaction
}

func (r *ReactionLedger) save(ctx context.Context) {
	r.store.Save(ctx, KeyReactionsLedger, r.claims)
}

// Claim records that identity reacted to articleID with reaction. It returns
// false if the same reaction was already recorded.
func (r *ReactionLedger) Claim(ctx context.Context, identity, articleID, reaction string) bool {
	key := claimKey(identity, reaction)

	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.claims[articleID]
	if set[key] {
		return false
	}
	if set == nil {
		set = make(map[string]bool)
		r.claims[articleID] = set
	}
	set[key] = true
	r.save(ctx)
	return true
}

// Release forgets a claim.
func (r *ReactionLedger) Release(ctx context.Context, identity, articleID, reaction string) {
	key := claimKey(identity, reaction)

	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.claims[articleID]
	if !set[key] {
		return
	}
	delete(set, key)
	if len(set) == 0 {
		delete(r.claims, articleID)
	}
	r.save(ctx)
}

// ForgetArticle drops every claim on articleID.
func (r *ReactionLedger) ForgetArticle(ctx context.Context, articleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.claims[articleID]; !ok {
		return
	}
	delete(r.claims, articleID)
	r.save(ctx)
}

// Claims returns the number of claims held for articleID.
func (r *ReactionLedger) Claims(articleID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.claims[articleID])
}
