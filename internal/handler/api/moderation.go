// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/newsroom/internal/middleware"
	"github.com/olegiv/newsroom/internal/service"
)

// NotifyAuthorRequest is the body of POST /reports/{id}/notify.
type NotifyAuthorRequest struct {
	Message string `json:"message"`
}

// SubmitReport handles POST /reports.
func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var in service.ReportInput
	if !decodeJSON(w, r, &in) {
		return
	}
	report, err := h.svc.Moderation.SubmitReport(r.Context(), middleware.GetUser(r), in)
	if err != nil {
		h.writeServiceError(w, r, "submitReport", err)
		return
	}
	WriteCreated(w, report)
}

// ListReports handles GET /reports.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.svc.Moderation.ListReports(middleware.GetUser(r))
	if err != nil {
		h.writeServiceError(w, r, "listReports", err)
		return
	}
	WriteList(w, reports)
}

// DismissReport handles POST /reports/{id}/dismiss.
func (h *Handler) DismissReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Moderation.DismissReport(r.Context(), middleware.GetUser(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, "dismissReport", err)
		return
	}
	WriteSuccess(w, report, nil)
}

// NotifyAuthor handles POST /reports/{id}/notify.
func (h *Handler) NotifyAuthor(w http.ResponseWriter, r *http.Request) {
	var req NotifyAuthorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	report, err := h.svc.Moderation.NotifyAuthorOfReport(r.Context(), middleware.GetUser(r),
		chi.URLParam(r, "id"), req.Message)
	if err != nil {
		h.writeServiceError(w, r, "notifyAuthorOfReport", err)
		return
	}
	WriteSuccess(w, report, nil)
}
