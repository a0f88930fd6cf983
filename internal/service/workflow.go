// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/newsroom/internal/metrics"
	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/repository"
	"github.com/olegiv/newsroom/internal/util"
	"github.com/olegiv/newsroom/internal/webhook"
)

// ErrNotPublished is returned when an operation needs a published article.
var ErrNotPublished = errors.New("article is not published")

// ArchiveFeedback is stored on an article when it is archived.
const ArchiveFeedback = "Archived by admin/author"

// relatedLimit is the maximum number of related articles returned.
const relatedLimit = 4

// ArticleInput is the author-editable part of an article. Slug is only
// honoured by UpdateArticle; new articles always derive it from the title.
type ArticleInput struct {
	Title        string              `json:"title" validate:"required,max=200"`
	Slug         string              `json:"slug,omitempty"`
	Excerpt      string              `json:"excerpt" validate:"max=500"`
	Content      string              `json:"content" validate:"required"`
	CategorySlug string              `json:"categorySlug" validate:"required"`
	ImageURL     string              `json:"imageUrl" validate:"omitempty,url"`
	VideoURL     string              `json:"videoUrl,omitempty" validate:"omitempty,url"`
	IsMemberOnly bool                `json:"isMemberOnly"`
	Status       model.ArticleStatus `json:"status,omitempty" validate:"omitempty,oneof=draft pending"`
}

// WorkflowService moves articles through the editorial state machine.
type WorkflowService struct {
	articles  *repository.ArticleRepository
	reactions *repository.ReactionLedger
	notifier  *NotificationService
	events    Publisher
	editorIDs []string
	logger    *slog.Logger
	now       func() time.Time
}

// NewWorkflowService creates a new WorkflowService. editorIDs receive a
// notification for every submission. reactions, when set, loses the claims
// of deleted articles.
func NewWorkflowService(articles *repository.ArticleRepository, reactions *repository.ReactionLedger, notifier *NotificationService, events Publisher, editorIDs []string, logger *slog.Logger) *WorkflowService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkflowService{
		articles:  articles,
		reactions: reactions,
		notifier:  notifier,
		events:    events,
		editorIDs: editorIDs,
		logger:    logger,
		now:       time.Now,
	}
}

// canEdit reports whether actor may change or delete a.
func canEdit(actor *model.User, a *model.Article) bool {
	if actor.IsPrivileged() {
		return true
	}
	return actor != nil && a.AuthorID == actor.ID && a.IsEditableByAuthor()
}

// isOwnerOrPrivileged reports whether actor wrote a or manages all content.
func isOwnerOrPrivileged(actor *model.User, a *model.Article) bool {
	return actor.IsPrivileged() || (actor != nil && a.AuthorID == actor.ID)
}

func articleEvent(a model.Article, from model.ArticleStatus, actor *model.User) webhook.ArticleEventData {
	return webhook.ArticleEventData{
		ID:         a.ID,
		Title:      a.Title,
		Slug:       a.Slug,
		AuthorID:   a.AuthorID,
		Status:     string(a.Status),
		FromStatus: string(from),
		ActorID:    actor.UserID(),
	}
}

func (s *WorkflowService) notifyEditors(ctx context.Context, message string) {
	for _, id := range s.editorIDs {
		s.notifier.Notify(ctx, id, message, model.NotificationInfo)
	}
}

// CreateArticle stores a new draft, or a pending article when in.Status asks
// for it, and tells the editors about it.
func (s *WorkflowService) CreateArticle(ctx context.Context, actor *model.User, in ArticleInput) (model.Article, error) {
	if actor == nil {
		return model.Article{}, ErrLoginRequired
	}
	if !actor.IsStaff() {
		return model.Article{}, ErrForbidden
	}

	in.Title = strings.TrimSpace(in.Title)
	if err := Validate(in); err != nil {
		return model.Article{}, err
	}

	status := in.Status
	if status == "" {
		status = model.ArticleStatusDraft
	}

	a := s.articles.Insert(ctx, model.Article{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Slug:         util.Slugify(in.Title),
		Excerpt:      in.Excerpt,
		Content:      in.Content,
		AuthorID:     actor.ID,
		AuthorName:   actor.DisplayName(),
		CategorySlug: in.CategorySlug,
		ImageURL:     in.ImageURL,
		VideoURL:     in.VideoURL,
		PublishedAt:  s.now().UTC(),
		Status:       status,
		IsMemberOnly: in.IsMemberOnly,
	})

	s.logger.Info("article created",
		"article_id", a.ID,
		"slug", a.Slug,
		"status", a.Status,
		"author_id", a.AuthorID)
	publish(ctx, s.events, s.logger, webhook.EventArticleCreated, articleEvent(a, "", actor))
	s.notifyEditors(ctx, fmt.Sprintf("New submission from %s: %s", a.AuthorName, a.Title))

	return a, nil
}

// UpdateArticle replaces the editable fields of an article. Status, views,
// reactions and authorship stay as stored. A new slug must be well formed
// and unused.
func (s *WorkflowService) UpdateArticle(ctx context.Context, actor *model.User, id string, in ArticleInput) (model.Article, error) {
	if actor == nil {
		return model.Article{}, ErrLoginRequired
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	if err := Validate(in); err != nil {
		return model.Article{}, err
	}

	a, err := s.articles.Edit(ctx, id, func(a *model.Article, slugFree func(string) bool) error {
		if !canEdit(actor, a) {
			return ErrForbidden
		}
		if in.Slug != "" && in.Slug != a.Slug {
			if !util.IsValidSlug(in.Slug) {
				return invalid("slug", "must contain only lowercase letters, numbers and hyphens")
			}
			if !slugFree(in.Slug) {
				return repository.ErrSlugTaken
			}
			a.Slug = in.Slug
		}

		a.Title = in.Title
		a.Excerpt = in.Excerpt
		a.Content = in.Content
		a.CategorySlug = in.CategorySlug
		a.ImageURL = in.ImageURL
		a.VideoURL = in.VideoURL
		a.IsMemberOnly = in.IsMemberOnly
		return nil
	})
	if err != nil {
		return model.Article{}, err
	}

	publish(ctx, s.events, s.logger, webhook.EventArticleUpdated, articleEvent(a, "", actor))
	return a, nil
}

// transition moves article id to status to. check runs first and may refuse
// the change; apply may adjust other fields alongside the status.
func (s *WorkflowService) transition(ctx context.Context, actor *model.User, id string, to model.ArticleStatus,
	check func(*model.Article) error, apply func(*model.Article)) (model.Article, error) {
	var from model.ArticleStatus
	a, err := s.articles.Update(ctx, id, func(a *model.Article) error {
		if check != nil {
			if err := check(a); err != nil {
				return err
			}
		}
		if err := model.CheckTransition(a.Status, to); err != nil {
			return err
		}
		from = a.Status
		a.Status = to
		if apply != nil {
			apply(a)
		}
		return nil
	})
	if err != nil {
		return model.Article{}, err
	}

	metrics.RecordTransition(string(from), string(to))
	s.logger.Info("article status changed",
		"article_id", a.ID,
		"from", from,
		"to", to,
		"actor_id", actor.UserID())
	publish(ctx, s.events, s.logger, webhook.EventArticleStatusChanged, articleEvent(a, from, actor))
	return a, nil
}

// SubmitForReview sends a draft or rejected article to the review queue.
func (s *WorkflowService) SubmitForReview(ctx context.Context, actor *model.User, id string) (model.Article, error) {
	if actor == nil {
		return model.Article{}, ErrLoginRequired
	}

	a, err := s.transition(ctx, actor, id, model.ArticleStatusPending, func(a *model.Article) error {
		if !isOwnerOrPrivileged(actor, a) {
			return ErrForbidden
		}
		return nil
	}, nil)
	if err != nil {
		return model.Article{}, err
	}

	s.notifyEditors(ctx, fmt.Sprintf("New submission from %s: %s", a.AuthorName, a.Title))
	return a, nil
}

// ReviewDecision publishes or rejects a pending article and tells its author.
// Non-empty feedback is stored on the article.
func (s *WorkflowService) ReviewDecision(ctx context.Context, actor *model.User, id string, decision model.ArticleStatus, feedback string) (model.Article, error) {
	if !actor.IsEditor() {
		return model.Article{}, ErrForbidden
	}
	if decision != model.ArticleStatusPublished && decision != model.ArticleStatusRejected {
		return model.Article{}, invalid("status", "must be one of: published rejected")
	}

	feedback = strings.TrimSpace(feedback)
	a, err := s.transition(ctx, actor, id, decision, nil, func(a *model.Article) {
		if feedback != "" {
			a.Feedback = feedback
		}
	})
	if err != nil {
		return model.Article{}, err
	}

	if decision == model.ArticleStatusPublished {
		s.notifier.Notify(ctx, a.AuthorID,
			fmt.Sprintf("Your article \"%s\" has been published!", a.Title), model.NotificationSuccess)
	} else {
		s.notifier.Notify(ctx, a.AuthorID,
			fmt.Sprintf("Your article \"%s\" was rejected. Feedback: %s", a.Title, orNone(feedback)), model.NotificationWarning)
	}
	return a, nil
}

// Archive takes a published article out of circulation.
func (s *WorkflowService) Archive(ctx context.Context, actor *model.User, id string) (model.Article, error) {
	if actor == nil {
		return model.Article{}, ErrLoginRequired
	}

	a, err := s.transition(ctx, actor, id, model.ArticleStatusArchived, func(a *model.Article) error {
		if !isOwnerOrPrivileged(actor, a) {
			return ErrForbidden
		}
		return nil
	}, func(a *model.Article) {
		a.Feedback = ArchiveFeedback
	})
	if err != nil {
		return model.Article{}, err
	}

	s.notifier.Notify(ctx, a.AuthorID,
		fmt.Sprintf("Your article \"%s\" was archived. Feedback: %s", a.Title, ArchiveFeedback), model.NotificationWarning)
	return a, nil
}

// SetArticleStatus routes a requested status change to the matching
// workflow step.
func (s *WorkflowService) SetArticleStatus(ctx context.Context, actor *model.User, id string, status model.ArticleStatus, feedback string) (model.Article, error) {
	switch status {
	case model.ArticleStatusPending:
		return s.SubmitForReview(ctx, actor, id)
	case model.ArticleStatusPublished, model.ArticleStatusRejected:
		return s.ReviewDecision(ctx, actor, id, status, feedback)
	case model.ArticleStatusArchived:
		return s.Archive(ctx, actor, id)
	case model.ArticleStatusDraft:
		return model.Article{}, fmt.Errorf("%w: articles cannot return to draft", model.ErrInvalidTransition)
	default:
		return model.Article{}, invalid("status", "must be one of: pending published rejected archived")
	}
}

// ToggleFeature flips the featured flag of a published article.
func (s *WorkflowService) ToggleFeature(ctx context.Context, actor *model.User, id string) (model.Article, error) {
	if !actor.IsPrivileged() {
		return model.Article{}, ErrForbidden
	}

	a, err := s.articles.Update(ctx, id, func(a *model.Article) error {
		if !a.IsPublished() {
			return ErrNotPublished
		}
		a.IsFeatured = !a.IsFeatured
		return nil
	})
	if err != nil {
		return model.Article{}, err
	}

	s.logger.Info("article feature toggled", "article_id", a.ID, "featured", a.IsFeatured)
	publish(ctx, s.events, s.logger, webhook.EventArticleUpdated, articleEvent(a, "", actor))
	return a, nil
}

// DeleteArticle removes an article. Authors may delete their own drafts and
// rejected articles; privileged users may delete anything.
func (s *WorkflowService) DeleteArticle(ctx context.Context, actor *model.User, id string) error {
	if actor == nil {
		return ErrLoginRequired
	}

	var deleted model.Article
	err := s.articles.Delete(ctx, id, func(a *model.Article) error {
		if !canEdit(actor, a) {
			return ErrForbidden
		}
		deleted = *a
		return nil
	})
	if err != nil {
		return err
	}

	if s.reactions != nil {
		s.reactions.ForgetArticle(ctx, id)
	}
	s.logger.Info("article deleted", "article_id", id, "actor_id", actor.ID)
	publish(ctx, s.events, s.logger, webhook.EventArticleDeleted, articleEvent(deleted, "", actor))
	return nil
}

// Get returns the article with the given id in any status.
func (s *WorkflowService) Get(id string) (model.Article, bool) {
	return s.articles.Get(id)
}

// GetBySlug returns the article with the given slug in any status.
func (s *WorkflowService) GetBySlug(slug string) (model.Article, bool) {
	return s.articles.BySlug(slug)
}

// ListPublished returns published articles, optionally of one category,
// newest first.
func (s *WorkflowService) ListPublished(category string) []model.Article {
	return s.articles.Published(category)
}

// ListAll returns every article newest first, for content managers.
func (s *WorkflowService) ListAll(actor *model.User) ([]model.Article, error) {
	if !actor.IsPrivileged() {
		return nil, ErrForbidden
	}
	out := s.articles.All()
	repository.SortNewestFirst(out)
	return out, nil
}

// ReviewQueue returns the articles awaiting review, newest first.
func (s *WorkflowService) ReviewQueue(actor *model.User) ([]model.Article, error) {
	if !actor.IsEditor() {
		return nil, ErrForbidden
	}
	return s.articles.ByStatus(model.ArticleStatusPending), nil
}

// MySubmissions returns the actor's articles except archived ones, grouped
// as draft, pending, rejected, published and newest first within a group.
func (s *WorkflowService) MySubmissions(actor *model.User) ([]model.Article, error) {
	if actor == nil {
		return nil, ErrLoginRequired
	}

	out := s.articles.Filter(func(a *model.Article) bool {
		return a.AuthorID == actor.ID && a.Status != model.ArticleStatusArchived
	})
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Status.SubmissionRank(), out[j].Status.SubmissionRank()
		if ri != rj {
			return ri < rj
		}
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out, nil
}

// Related returns up to four other published articles of the same category.
func (s *WorkflowService) Related(id, category string) []model.Article {
	out := make([]model.Article, 0, relatedLimit)
	for _, a := range s.articles.Published(category) {
		if a.ID == id {
			continue
		}
		out = append(out, a)
		if len(out) == relatedLimit {
			break
		}
	}
	return out
}

// Bookmarked returns the published articles whose slug is in slugs.
func (s *WorkflowService) Bookmarked(slugs []string) []model.Article {
	want := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		want[slug] = struct{}{}
	}
	return s.articles.Filter(func(a *model.Article) bool {
		_, ok := want[a.Slug]
		return ok && a.IsPublished()
	})
}

// Featured returns the newest featured published article, or the newest
// published article when none is featured.
func (s *WorkflowService) Featured() (model.Article, bool) {
	published := s.articles.Published("")
	for _, a := range published {
		if a.IsFeatured {
			return a, true
		}
	}
	if len(published) > 0 {
		return published[0], true
	}
	return model.Article{}, false
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
