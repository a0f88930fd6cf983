// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/newsroom/internal/middleware"
	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/service"
)

// ArticleView is an article as served to a reader. Member-only content is
// withheld from anonymous readers and Locked is set instead.
type ArticleView struct {
	model.Article
	Locked bool `json:"locked,omitempty"`
}

func viewFor(a model.Article, user *model.User) ArticleView {
	if a.IsMemberOnly && !user.IsMember() {
		a.Content = ""
		return ArticleView{Article: a, Locked: true}
	}
	return ArticleView{Article: a}
}

// viewsFor applies viewFor to every article of a reader-facing list.
func viewsFor(articles []model.Article, user *model.User) []ArticleView {
	views := make([]ArticleView, len(articles))
	for i, a := range articles {
		views[i] = viewFor(a, user)
	}
	return views
}

// StatusRequest is the body of POST /articles/{id}/status.
type StatusRequest struct {
	Status   model.ArticleStatus `json:"status"`
	Feedback string              `json:"feedback,omitempty"`
}

// ReactionRequest is the body of POST /articles/{id}/reactions.
type ReactionRequest struct {
	Reaction string `json:"reaction"`
}

// BookmarksRequest is the body of POST /articles/bookmarks.
type BookmarksRequest struct {
	Slugs []string `json:"slugs"`
}

// ListArticles handles GET /articles.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	WriteList(w, viewsFor(h.svc.Workflow.ListPublished(r.URL.Query().Get("category")), middleware.GetUser(r)))
}

// ListAllArticles handles GET /articles/all.
func (h *Handler) ListAllArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.svc.Workflow.ListAll(middleware.GetUser(r))
	if err != nil {
		h.writeServiceError(w, r, "listAllArticles", err)
		return
	}
	WriteList(w, articles)
}

// FeaturedArticle handles GET /articles/featured.
func (h *Handler) FeaturedArticle(w http.ResponseWriter, r *http.Request) {
	a, ok := h.svc.Workflow.Featured()
	if !ok {
		WriteNotFound(w, "No published articles")
		return
	}
	WriteSuccess(w, viewFor(a, middleware.GetUser(r)), nil)
}

// GetArticleBySlug handles GET /articles/slug/{slug}. Unpublished articles
// are visible to staff only. Every successful read is audited.
func (h *Handler) GetArticleBySlug(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	a, ok := h.svc.Workflow.GetBySlug(chi.URLParam(r, "slug"))
	if !ok || (!a.IsPublished() && !user.IsStaff()) {
		WriteNotFound(w, "Article not found")
		return
	}
	h.svc.Audit.RecordView(r.Context(), user, a.Title)
	WriteSuccess(w, viewFor(a, user), nil)
}

// RelatedArticles handles GET /articles/{id}/related.
func (h *Handler) RelatedArticles(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, ok := h.svc.Workflow.Get(id)
	if !ok {
		WriteNotFound(w, "Article not found")
		return
	}
	WriteList(w, viewsFor(h.svc.Workflow.Related(id, a.CategorySlug), middleware.GetUser(r)))
}

// MySubmissions handles GET /articles/mine.
func (h *Handler) MySubmissions(w http.ResponseWriter, r *http.Request) {
	articles, err := h.svc.Workflow.MySubmissions(middleware.GetUser(r))
	if err != nil {
		h.writeServiceError(w, r, "mySubmissions", err)
		return
	}
	WriteList(w, articles)
}

// ReviewQueue handles GET /articles/review-queue.
func (h *Handler) ReviewQueue(w http.ResponseWriter, r *http.Request) {
	articles, err := h.svc.Workflow.ReviewQueue(middleware.GetUser(r))
	if err != nil {
		h.writeServiceError(w, r, "reviewQueue", err)
		return
	}
	WriteList(w, articles)
}

// Bookmarks handles POST /articles/bookmarks.
func (h *Handler) Bookmarks(w http.ResponseWriter, r *http.Request) {
	var req BookmarksRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	WriteList(w, viewsFor(h.svc.Workflow.Bookmarked(req.Slugs), middleware.GetUser(r)))
}

// CreateArticle handles POST /articles.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var in service.ArticleInput
	if !decodeJSON(w, r, &in) {
		return
	}
	a, err := h.svc.Workflow.CreateArticle(r.Context(), middleware.GetUser(r), in)
	if err != nil {
		h.writeServiceError(w, r, "createArticle", err)
		return
	}
	WriteCreated(w, a)
}

// UpdateArticle handles PUT /articles/{id}.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	var in service.ArticleInput
	if !decodeJSON(w, r, &in) {
		return
	}
	a, err := h.svc.Workflow.UpdateArticle(r.Context(), middleware.GetUser(r), chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeServiceError(w, r, "updateArticle", err)
		return
	}
	WriteSuccess(w, a, nil)
}

// DeleteArticle handles DELETE /articles/{id}.
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Workflow.DeleteArticle(r.Context(), middleware.GetUser(r), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, "deleteArticle", err)
		return
	}
	WriteNoContent(w)
}

// SetArticleStatus handles POST /articles/{id}/status.
func (h *Handler) SetArticleStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := h.svc.Workflow.SetArticleStatus(r.Context(), middleware.GetUser(r),
		chi.URLParam(r, "id"), req.Status, req.Feedback)
	if err != nil {
		h.writeServiceError(w, r, "setArticleStatus", err)
		return
	}
	WriteSuccess(w, a, nil)
}

// ToggleFeature handles POST /articles/{id}/feature.
func (h *Handler) ToggleFeature(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Workflow.ToggleFeature(r.Context(), middleware.GetUser(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, "toggleFeature", err)
		return
	}
	WriteSuccess(w, a, nil)
}

// IncrementViews handles POST /articles/{id}/views.
func (h *Handler) IncrementViews(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Engagement.IncrementViews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, "incrementViews", err)
		return
	}
	WriteSuccess(w, map[string]int64{"views": a.Views}, nil)
}

// React handles POST /articles/{id}/reactions. Signed-in readers react as
// themselves; anonymous readers are identified by address.
func (h *Handler) React(w http.ResponseWriter, r *http.Request) {
	var req ReactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	identity := "ip:" + remoteHost(r)
	if user := middleware.GetUser(r); user != nil {
		identity = "user:" + user.ID
	}

	counts, err := h.svc.Engagement.React(r.Context(), chi.URLParam(r, "id"), req.Reaction, identity)
	if err != nil {
		h.writeServiceError(w, r, "react", err)
		return
	}
	if counts == nil {
		WriteNotFound(w, "Article not found")
		return
	}
	WriteSuccess(w, counts, nil)
}
