// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the cookie session that remembers the signed-in user.
package session

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/olegiv/newsroom/internal/store"
)

// Lifetime is how long a session stays valid.
const Lifetime = 24 * time.Hour

// New creates a session manager. Sessions are kept in the sessions table when
// backend is SQLite and in memory otherwise.
func New(backend store.Backend, isDev bool) *scs.SessionManager {
	sm := scs.New()

	if sql, ok := backend.(*store.SQLBackend); ok && sql.Dialect() == store.BackendSQLite {
		sm.Store = sqlite3store.New(sql.DB())
	} else {
		sm.Store = memstore.New()
	}

	sm.Lifetime = Lifetime
	sm.Cookie.Name = "newsroom_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev

	return sm
}
