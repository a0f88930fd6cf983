// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/newsroom/internal/auth"
	"github.com/olegiv/newsroom/internal/middleware"
	"github.com/olegiv/newsroom/internal/model"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	SchoolID string `json:"schoolId"`
}

// MeResponse describes the signed-in user.
type MeResponse struct {
	User   model.User `json:"user"`
	Unread int        `json:"unreadNotifications"`
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if locked, remaining := h.guard.IsAccountLocked(req.Email); locked {
		h.logger.WarnContext(r.Context(), "login attempt on locked account", "email", req.Email)
		writeLocked(w, remaining)
		return
	}

	user, err := h.users.Login(r.Context(), req.Email, req.SchoolID)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.writeServiceError(w, r, "login", err)
			return
		}
		// Unknown emails count too so lockout does not reveal which accounts exist.
		if locked, lockDuration := h.guard.RecordFailedAttempt(req.Email); locked {
			h.logger.WarnContext(r.Context(), "account locked due to failed attempts",
				"email", req.Email, "duration", lockDuration.String())
			writeLocked(w, lockDuration)
			return
		}
		WriteUnauthorized(w, err.Error())
		return
	}

	h.guard.RecordSuccessfulLogin(req.Email)

	if err := h.sm.RenewToken(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "session renewal error", "error", err)
		WriteInternalError(w, "Failed to start session")
		return
	}
	h.sm.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	h.logger.InfoContext(r.Context(), "user logged in", "user_id", user.ID, "role", user.Role)
	h.svc.Audit.RecordLogin(r.Context(), &user, r.UserAgent())

	WriteSuccess(w, MeResponse{User: user, Unread: h.svc.Notifications.UnreadCount(&user)}, nil)
}

// Logout handles POST /auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if err := h.sm.Destroy(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "session destroy error", "error", err)
	}
	if user != nil {
		h.logger.InfoContext(r.Context(), "user logged out", "user_id", user.ID)
	}
	WriteNoContent(w)
}

// Me handles GET /auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Login required")
		return
	}
	WriteSuccess(w, MeResponse{User: *user, Unread: h.svc.Notifications.UnreadCount(user)}, nil)
}

// UpdateMe handles PUT /auth/me.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Login required")
		return
	}
	h.updateProfile(w, r, user.ID)
}

// ListUsers handles GET /users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(middleware.GetUser(r))
	if err != nil {
		h.writeServiceError(w, r, "listUsers", err)
		return
	}
	WriteList(w, users)
}

// CreateUser handles POST /users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var u model.User
	if !decodeJSON(w, r, &u) {
		return
	}
	created, err := h.users.Create(r.Context(), middleware.GetUser(r), u)
	if err != nil {
		h.writeServiceError(w, r, "createUser", err)
		return
	}
	WriteCreated(w, created)
}

// UpdateUser handles PUT /users/{id}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	h.updateProfile(w, r, chi.URLParam(r, "id"))
}

// RemoveUser handles DELETE /users/{id}.
func (h *Handler) RemoveUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Remove(r.Context(), middleware.GetUser(r), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, "removeUser", err)
		return
	}
	WriteNoContent(w)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request, id string) {
	var p auth.ProfileUpdate
	if !decodeJSON(w, r, &p) {
		return
	}
	updated, err := h.users.UpdateProfile(r.Context(), middleware.GetUser(r), id, p)
	if err != nil {
		h.writeServiceError(w, r, "updateProfile", err)
		return
	}
	WriteSuccess(w, updated, nil)
}

// writeLocked writes a 429 response for a locked account.
func writeLocked(w http.ResponseWriter, remaining time.Duration) {
	w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(remaining.Seconds()))))
	WriteError(w, http.StatusTooManyRequests, "account_locked",
		fmt.Sprintf("Too many failed attempts. Try again in %s.", formatDuration(remaining)), nil)
}

// formatDuration renders d as whole minutes, or seconds below one minute.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(math.Ceil(d.Seconds())))
	}
	minutes := int(math.Ceil(d.Minutes()))
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
