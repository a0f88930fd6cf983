// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON REST API of the newsroom.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/newsroom/internal/auth"
	"github.com/olegiv/newsroom/internal/middleware"
	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/repository"
	"github.com/olegiv/newsroom/internal/service"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	svc    *service.Services
	users  *auth.Directory
	sm     *scs.SessionManager
	guard  *middleware.LoginProtection
	health *HealthChecker
	logger *slog.Logger
}

// Options configures a Handler.
type Options struct {
	Services *service.Services
	Users    *auth.Directory
	Sessions *scs.SessionManager
	Login    *middleware.LoginProtection
	Health   *HealthChecker
	Logger   *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	guard := opts.Login
	if guard == nil {
		guard = middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	}
	return &Handler{
		svc:    opts.Services,
		users:  opts.Users,
		sm:     opts.Sessions,
		guard:  guard,
		health: opts.Health,
		logger: logger,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains list metadata.
type Meta struct {
	Total int `json:"total"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteList writes a list with its total.
func WriteList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	WriteSuccess(w, items, &Meta{Total: len(items)})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteNoContent writes a 204 No Content response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteForbidden writes a 403 Forbidden response.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, "forbidden", message, nil)
}

// WriteConflict writes a 409 Conflict response.
func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, "conflict", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// decodeJSON reads a JSON request body into dst. It writes a 400 response
// and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return false
	}
	return true
}

// writeServiceError maps a service error to its HTTP response. Refusals
// are recorded in the access log under operation.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteValidationError(w, verr.Fields)
	case errors.Is(err, service.ErrLoginRequired):
		WriteUnauthorized(w, "Login required")
	case errors.Is(err, service.ErrForbidden):
		h.svc.Audit.RecordDenied(r.Context(), middleware.GetUser(r), operation)
		WriteForbidden(w, "Insufficient permissions")
	case errors.Is(err, repository.ErrNotFound):
		WriteNotFound(w, "Not found")
	case errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, repository.ErrSlugTaken),
		errors.Is(err, repository.ErrSystemPage),
		errors.Is(err, service.ErrReportClosed),
		errors.Is(err, service.ErrNotPublished),
		errors.Is(err, auth.ErrEmailTaken),
		errors.Is(err, auth.ErrSelfRemoval):
		WriteConflict(w, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "operation", operation, "error", err)
		WriteInternalError(w, "Something went wrong")
	}
}

// remoteHost returns the client address without its port. RealIP runs
// earlier in the chain, so RemoteAddr already honours trusted proxy headers.
func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
