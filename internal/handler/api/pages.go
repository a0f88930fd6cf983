// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/newsroom/internal/middleware"
	"github.com/olegiv/newsroom/internal/model"
)

// NavigationItem is a page as it appears in the site menu.
type NavigationItem struct {
	model.PageConfig
	URL string `json:"url"`
}

// Navigation handles GET /pages/navigation.
func (h *Handler) Navigation(w http.ResponseWriter, r *http.Request) {
	pages := h.svc.Pages.Navigation(middleware.GetUser(r))
	items := make([]NavigationItem, 0, len(pages))
	for i := range pages {
		items = append(items, NavigationItem{PageConfig: pages[i], URL: pages[i].URL()})
	}
	WriteList(w, items)
}

// ListPages handles GET /pages.
func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.svc.Pages.List(middleware.GetUser(r))
	if err != nil {
		h.writeServiceError(w, r, "listPages", err)
		return
	}
	WriteList(w, pages)
}

// GetPage handles GET /pages/slug/{slug}.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	p, ok := h.svc.Pages.GetBySlug(middleware.GetUser(r), chi.URLParam(r, "slug"))
	if !ok {
		WriteNotFound(w, "Page not found")
		return
	}
	WriteSuccess(w, p, nil)
}

// CreatePage handles POST /pages.
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var p model.PageConfig
	if !decodeJSON(w, r, &p) {
		return
	}
	created, err := h.svc.Pages.Create(r.Context(), middleware.GetUser(r), p)
	if err != nil {
		h.writeServiceError(w, r, "createPage", err)
		return
	}
	WriteCreated(w, created)
}

// UpdatePage handles PUT /pages/{id}.
func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	var p model.PageConfig
	if !decodeJSON(w, r, &p) {
		return
	}
	updated, err := h.svc.Pages.Update(r.Context(), middleware.GetUser(r), chi.URLParam(r, "id"), p)
	if err != nil {
		h.writeServiceError(w, r, "updatePage", err)
		return
	}
	WriteSuccess(w, updated, nil)
}

// DeletePage handles DELETE /pages/{id}.
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Pages.Delete(r.Context(), middleware.GetUser(r), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, "deletePage", err)
		return
	}
	WriteNoContent(w)
}
