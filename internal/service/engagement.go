// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/repository"
)

// CommentInput is a new reader comment.
type CommentInput struct {
	ArticleID string `json:"articleId" validate:"required"`
	Content   string `json:"content" validate:"required,max=2000"`
}

// ContactInput is a message sent through the contact form.
type ContactInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// EngagementService covers reader interaction: views, reactions, comments,
// the poll, the events calendar, contact messages and the newsletter.
type EngagementService struct {
	articles    *repository.ArticleRepository
	ledger      *repository.ReactionLedger
	comments    *repository.CommentRepository
	poll        *repository.PollRepository
	events      *repository.EventRepository
	messages    *repository.MessageRepository
	subscribers *repository.SubscriberRepository
	logger      *slog.Logger
	now         func() time.Time
}

// NewEngagementService creates a new EngagementService.
func NewEngagementService(repos *repository.Repositories, logger *slog.Logger) *EngagementService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EngagementService{
		articles:    repos.Articles,
		ledger:      repos.Reactions,
		comments:    repos.Comments,
		poll:        repos.Poll,
		events:      repos.Events,
		messages:    repos.Messages,
		subscribers: repos.Subscribers,
		logger:      logger,
		now:         time.Now,
	}
}

// IncrementViews adds one view to the article.
func (s *EngagementService) IncrementViews(ctx context.Context, id string) (model.Article, error) {
	return s.articles.Update(ctx, id, func(a *model.Article) error {
		a.Views++
		return nil
	})
}

// React adds reaction key from identity to the article. Each identity counts
// once per article and reaction; a repeat returns the current counters.
// It returns nil counters when the article does not exist.
func (s *EngagementService) React(ctx context.Context, id, key, identity string) (*model.ArticleReactions, error) {
	if !model.IsReactionKey(key) {
		return nil, invalid("reaction", "must be one of: like love insightful sad")
	}
	if identity == "" {
		return nil, invalid("identity", "is required")
	}

	a, ok := s.articles.Get(id)
	if !ok {
		return nil, nil
	}
	if !s.ledger.Claim(ctx, identity, id, key) {
		return &a.Reactions, nil
	}

	a, err := s.articles.Update(ctx, id, func(a *model.Article) error {
		a.Reactions.Increment(key)
		return nil
	})
	if err != nil {
		s.ledger.Release(ctx, identity, id, key)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a.Reactions, nil
}

// AddComment stores a comment by the signed-in actor. Markup is stripped.
func (s *EngagementService) AddComment(ctx context.Context, actor *model.User, in CommentInput) (model.Comment, error) {
	if actor == nil {
		return model.Comment{}, ErrLoginRequired
	}
	in.Content = sanitizeText(in.Content)
	if err := Validate(in); err != nil {
		return model.Comment{}, err
	}

	c := model.Comment{
		ID:        uuid.NewString(),
		ArticleID: in.ArticleID,
		UserID:    actor.ID,
		UserName:  actor.DisplayName(),
		Content:   in.Content,
		CreatedAt: s.now().UTC(),
	}
	if a, ok := s.articles.Get(in.ArticleID); ok {
		c.ArticleTitle = a.Title
	}

	s.comments.Prepend(ctx, c)
	return c, nil
}

// ListComments returns the comments on articleID, or every comment when it
// is empty, newest first.
func (s *EngagementService) ListComments(articleID string) []model.Comment {
	return s.comments.ForArticle(articleID)
}

// DeleteComment removes a comment. Authors may delete their own comments;
// privileged users may delete any.
func (s *EngagementService) DeleteComment(ctx context.Context, actor *model.User, id string) error {
	if actor == nil {
		return ErrLoginRequired
	}
	return s.comments.Delete(ctx, id, func(c *model.Comment) error {
		if c.UserID != actor.ID && !actor.IsPrivileged() {
			return ErrForbidden
		}
		return nil
	})
}

// ActivePoll returns the current poll.
func (s *EngagementService) ActivePoll() model.Poll {
	return s.poll.Get()
}

// Vote counts one vote for optionID. A vote for another poll than the active
// one leaves the poll unchanged.
func (s *EngagementService) Vote(ctx context.Context, pollID, optionID string) (model.Poll, error) {
	return s.poll.Update(ctx, func(p *model.Poll) error {
		if p.ID != pollID {
			return nil
		}
		for i := range p.Options {
			if p.Options[i].ID == optionID {
				p.Options[i].Votes++
				p.TotalVotes++
				return nil
			}
		}
		return invalid("optionId", "unknown option")
	})
}

// ListEvents returns the calendar in date order.
func (s *EngagementService) ListEvents() []model.SchoolEvent {
	return s.events.Chronological()
}

func prepareEvent(ev *model.SchoolEvent) {
	ev.Title = strings.TrimSpace(ev.Title)
	ev.Description = sanitizeText(ev.Description)
	if ev.Status == "" {
		ev.Status = model.EventStatusScheduled
	}
	for i := range ev.SubEvents {
		if ev.SubEvents[i].ID == "" {
			ev.SubEvents[i].ID = uuid.NewString()
		}
	}
}

// CreateEvent adds an event to the calendar.
func (s *EngagementService) CreateEvent(ctx context.Context, actor *model.User, ev model.SchoolEvent) (model.SchoolEvent, error) {
	if !actor.IsPrivileged() {
		return model.SchoolEvent{}, ErrForbidden
	}
	prepareEvent(&ev)
	if err := Validate(ev); err != nil {
		return model.SchoolEvent{}, err
	}

	ev.ID = uuid.NewString()
	s.events.Append(ctx, ev)
	s.logger.Info("event created", "event_id", ev.ID, "date", ev.Date)
	return ev, nil
}

// UpdateEvent replaces the event with the given id.
func (s *EngagementService) UpdateEvent(ctx context.Context, actor *model.User, id string, ev model.SchoolEvent) (model.SchoolEvent, error) {
	if !actor.IsPrivileged() {
		return model.SchoolEvent{}, ErrForbidden
	}
	prepareEvent(&ev)
	if err := Validate(ev); err != nil {
		return model.SchoolEvent{}, err
	}

	return s.events.Update(ctx, id, func(stored *model.SchoolEvent) error {
		ev.ID = stored.ID
		*stored = ev
		return nil
	})
}

// DeleteEvent removes an event from the calendar.
func (s *EngagementService) DeleteEvent(ctx context.Context, actor *model.User, id string) error {
	if !actor.IsPrivileged() {
		return ErrForbidden
	}
	return s.events.Delete(ctx, id, nil)
}

// SendContactMessage stores a message from the contact form.
func (s *EngagementService) SendContactMessage(ctx context.Context, in ContactInput) (model.ContactMessage, error) {
	in.Name = sanitizeText(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = sanitizeText(in.Message)
	if err := Validate(in); err != nil {
		return model.ContactMessage{}, err
	}

	m := model.ContactMessage{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: s.now().UTC(),
	}
	s.messages.Prepend(ctx, m)
	return m, nil
}

// ListMessages returns the contact messages, newest first.
func (s *EngagementService) ListMessages(actor *model.User) ([]model.ContactMessage, error) {
	if !actor.IsPrivileged() {
		return nil, ErrForbidden
	}
	return s.messages.All(), nil
}

// MarkMessageRead flags a contact message as handled.
func (s *EngagementService) MarkMessageRead(ctx context.Context, actor *model.User, id string) (model.ContactMessage, error) {
	if !actor.IsPrivileged() {
		return model.ContactMessage{}, ErrForbidden
	}
	return s.messages.Update(ctx, id, func(m *model.ContactMessage) error {
		m.IsRead = true
		return nil
	})
}

// Subscribe adds email to the newsletter. It reports whether the address
// was new.
func (s *EngagementService) Subscribe(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Var(email, "required,email"); err != nil {
		return false, invalid("email", "must be a valid email address")
	}
	added := s.subscribers.Add(ctx, email)
	if added {
		s.logger.Info("newsletter subscription added")
	}
	return added, nil
}

// Catalog is the read-only media archive.
type Catalog struct {
	PrintEditions []model.PrintEdition `json:"printEditions"`
	Team          []model.TeamMember   `json:"team"`
	Albums        []model.GalleryAlbum `json:"albums"`
	Videos        []model.Video        `json:"videos"`
}

// Catalog returns the print editions, team, gallery and videos.
func (s *EngagementService) Catalog() Catalog {
	return Catalog{
		PrintEditions: repository.PrintEditions(),
		Team:          repository.TeamMembers(),
		Albums:        repository.Albums(),
		Videos:        repository.Videos(),
	}
}
