// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/newsroom/internal/auth"
	"github.com/olegiv/newsroom/internal/middleware"
	"github.com/olegiv/newsroom/internal/repository"
	"github.com/olegiv/newsroom/internal/service"
	"github.com/olegiv/newsroom/internal/session"
	"github.com/olegiv/newsroom/internal/store"
)

// Seeded accounts.
const (
	auditorEmail    = "auditor@light.edu"
	auditorSchoolID = "2020-0001"
	eicEmail        = "eic@light.edu"
	eicSchoolID     = "2021-0055"
	writerEmail     = "writer@light.edu"
	writerSchoolID  = "2023-0512"
)

type testServer struct {
	t       *testing.T
	handler *Handler
	repos   *repository.Repositories
	store   *store.Store
	router  http.Handler
}

// newTestServer serves the default dataset from a memory store. The login
// IP limit is lifted so tests can sign in freely.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := store.NewMemoryBackend()
	s := store.New(backend, logger)
	t.Cleanup(func() { _ = s.Close() })

	repos := repository.New(context.Background(), s, repository.Options{})
	svc := service.New(repos, service.Options{Logger: logger})

	h := NewHandler(Options{
		Services: svc,
		Users:    auth.NewDirectory(repos.Users, logger),
		Sessions: session.New(backend, true),
		Login:    middleware.NewLoginProtection(middleware.LoginProtectionConfig{IPRateLimit: 1000, IPBurst: 1000}),
		Health:   NewHealthChecker(s, "test"),
		Logger:   logger,
	})

	return &testServer{
		t:       t,
		handler: h,
		repos:   repos,
		store:   s,
		router:  h.Routes(RouterConfig{IsDevelopment: true}),
	}
}

// do sends a request with an optional JSON body and session cookie.
func (ts *testServer) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	ts.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// login signs in and returns the session cookie.
func (ts *testServer) login(email, schoolID string) *http.Cookie {
	ts.t.Helper()

	rec := ts.do(http.MethodPost, Prefix+"/auth/login", LoginRequest{Email: email, SchoolID: schoolID}, nil)
	require.Equal(ts.t, http.StatusOK, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == "newsroom_session" {
			return c
		}
	}
	ts.t.Fatal("login did not set a session cookie")
	return nil
}

// decodeData decodes the data field of a success envelope into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()

	var env struct {
		Data json.RawMessage `json:"data"`
		Meta *Meta           `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, dst), string(env.Data))
}

// decodeError decodes an error envelope.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp.Error
}
