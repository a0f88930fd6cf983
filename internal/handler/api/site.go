// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/newsroom/internal/middleware"
	"github.com/olegiv/newsroom/internal/model"
)

// GetSystemConfig handles GET /system/config.
func (h *Handler) GetSystemConfig(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, h.svc.Config.Get(), nil)
}

// UpdateSystemConfig handles PUT /system/config.
func (h *Handler) UpdateSystemConfig(w http.ResponseWriter, r *http.Request) {
	var u model.SystemConfigUpdate
	if !decodeJSON(w, r, &u) {
		return
	}
	cfg, err := h.svc.Config.Update(r.Context(), middleware.GetUser(r), u)
	if err != nil {
		h.writeServiceError(w, r, "updateSystemConfig", err)
		return
	}
	WriteSuccess(w, cfg, nil)
}

// Search handles GET /search?q=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	WriteList(w, h.svc.Search.Search(r.URL.Query().Get("q")))
}

// SearchCatalog handles GET /search/catalog.
func (h *Handler) SearchCatalog(w http.ResponseWriter, _ *http.Request) {
	WriteList(w, h.svc.Search.Catalog())
}

// AccessLogs handles GET /access-logs.
func (h *Handler) AccessLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.svc.Audit.List(middleware.GetUser(r))
	if err != nil {
		h.writeServiceError(w, r, "getAccessLogs", err)
		return
	}
	WriteList(w, logs)
}
