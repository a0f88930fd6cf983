// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/olegiv/newsroom/internal/store"
)

func TestNew_MemoryBackendUsesMemstore(t *testing.T) {
	sm := New(store.NewMemoryBackend(), true)

	if _, ok := sm.Store.(*memstore.MemStore); !ok {
		t.Errorf("Store = %T, want *memstore.MemStore", sm.Store)
	}
	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
}

func TestNew_SQLiteBackendUsesSQLiteStore(t *testing.T) {
	b, err := store.OpenSQLBackend(store.BackendSQLite, filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("OpenSQLBackend: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })

	sm := New(b, false)
	if _, ok := sm.Store.(*sqlite3store.SQLite3Store); !ok {
		t.Errorf("Store = %T, want *sqlite3store.SQLite3Store", sm.Store)
	}
	if !sm.Cookie.Secure || !sm.Cookie.HttpOnly {
		t.Errorf("cookie flags: secure=%v httpOnly=%v", sm.Cookie.Secure, sm.Cookie.HttpOnly)
	}
	if sm.Lifetime != Lifetime {
		t.Errorf("Lifetime = %v, want %v", sm.Lifetime, Lifetime)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	sm := New(store.NewMemoryBackend(), true)

	put := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), "user_id", "4")
	}))
	rr := httptest.NewRecorder()
	put.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie set")
	}

	var got string
	get := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = sm.GetString(r.Context(), "user_id")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	get.ServeHTTP(httptest.NewRecorder(), req)

	if got != "4" {
		t.Errorf("user_id = %q, want %q", got, "4")
	}
}
