// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/newsroom/internal/logging"
	"github.com/olegiv/newsroom/internal/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser holds the signed-in *model.User.
const ContextKeyUser ContextKey = "user"

// SessionKeyUserID is the session key holding the signed-in user id.
const SessionKeyUserID = "user_id"

// UserLookup finds accounts by id.
type UserLookup interface {
	GetByID(id string) (model.User, bool)
}

// LoadUser creates middleware that loads the signed-in user into the request
// context. A session pointing at a removed account is cleared and the request
// continues anonymously.
func LoadUser(sm *scs.SessionManager, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetString(r.Context(), SessionKeyUserID)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, ok := users.GetByID(userID)
			if !ok {
				sm.Remove(r.Context(), SessionKeyUserID)
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithUser(r.Context(), &user)
			ctx = logging.WithAttrs(ctx, slog.String("user_id", user.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, user)
}

// GetUser retrieves the signed-in user from the request context.
// Returns nil for anonymous requests.
func GetUser(r *http.Request) *model.User {
	user, _ := r.Context().Value(ContextKeyUser).(*model.User)
	return user
}

// RequireLogin creates middleware that refuses anonymous requests with 401.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r) == nil {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Login required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole creates middleware that lets through signed-in users for whom
// allowed returns true. onDenied, when set, is called for every refusal.
func RequireRole(allowed func(*model.User) bool, onDenied func(r *http.Request, user *model.User)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Login required", nil)
				return
			}
			if !allowed(user) {
				slog.WarnContext(r.Context(), "access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_role", user.Role)
				if onDenied != nil {
					onDenied(r, user)
				}
				WriteAPIError(w, http.StatusForbidden, "forbidden", "Insufficient permissions", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
