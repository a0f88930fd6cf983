// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/newsroom/internal/auth"
	"github.com/olegiv/newsroom/internal/middleware"
	"github.com/olegiv/newsroom/internal/model"
)

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, Prefix+"/auth/login", LoginRequest{Email: "  Writer@Light.edu ", SchoolID: writerSchoolID}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var me MeResponse
	decodeData(t, rec, &me)
	assert.Equal(t, "4", me.User.ID)
	assert.Equal(t, model.RoleJournalist, me.User.Role)

	logs := ts.repos.AccessLogs.All()
	require.NotEmpty(t, logs)
	assert.Equal(t, model.ActionLogin, logs[0].Action)
	assert.Equal(t, "4", logs[0].UserID)
	assert.Contains(t, logs[0].Details, "Firefox")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"wrong school id", LoginRequest{Email: writerEmail, SchoolID: "0000-0000"}},
		{"unknown email", LoginRequest{Email: "nobody@light.edu", SchoolID: writerSchoolID}},
		{"missing school id", LoginRequest{Email: writerEmail}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(http.MethodPost, Prefix+"/auth/login", tt.req, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, string(auth.ErrInvalidCredentials), decodeError(t, rec).Message)
		})
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, Prefix+"/auth/login", "not an object", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeError(t, rec).Code)
}

func TestLogin_LocksAccount(t *testing.T) {
	ts := newTestServer(t)

	bad := LoginRequest{Email: writerEmail, SchoolID: "wrong"}
	for i := 0; i < 4; i++ {
		rec := ts.do(http.MethodPost, Prefix+"/auth/login", bad, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "attempt %d", i+1)
	}

	rec := ts.do(http.MethodPost, Prefix+"/auth/login", bad, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "account_locked", decodeError(t, rec).Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// The right credentials are refused while the lock holds.
	rec = ts.do(http.MethodPost, Prefix+"/auth/login", LoginRequest{Email: writerEmail, SchoolID: writerSchoolID}, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Other accounts are unaffected.
	ts.login(eicEmail, eicSchoolID)
}

func TestLogin_IPRateLimit(t *testing.T) {
	ts := newTestServer(t)
	ts.handler.guard = middleware.NewLoginProtection(middleware.LoginProtectionConfig{IPRateLimit: 0.001, IPBurst: 2})
	ts.router = ts.handler.Routes(RouterConfig{IsDevelopment: true})

	ts.login(writerEmail, writerSchoolID)
	ts.login(writerEmail, writerSchoolID)

	rec := ts.do(http.MethodPost, Prefix+"/auth/login", LoginRequest{Email: writerEmail, SchoolID: writerSchoolID}, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate_limit_exceeded", decodeError(t, rec).Code)
}

func TestMeAndLogout(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, Prefix+"/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := ts.login(eicEmail, eicSchoolID)
	rec = ts.do(http.MethodGet, Prefix+"/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var me MeResponse
	decodeData(t, rec, &me)
	assert.Equal(t, "2", me.User.ID)

	rec = ts.do(http.MethodPost, Prefix+"/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodGet, Prefix+"/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateMe(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(writerEmail, writerSchoolID)

	bio := "Covers sports and student life."
	rec := ts.do(http.MethodPut, Prefix+"/auth/me", auth.ProfileUpdate{Bio: &bio}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var u model.User
	decodeData(t, rec, &u)
	assert.Equal(t, bio, u.Bio)
	assert.Equal(t, "Jimmy Pen", u.Name)

	avatar := "not a url"
	rec = ts.do(http.MethodPut, Prefix+"/auth/me", auth.ProfileUpdate{Avatar: &avatar}, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Details, "avatar")
}

func TestUsers_AdminOnly(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, Prefix+"/users", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := ts.login(eicEmail, eicSchoolID)
	rec = ts.do(http.MethodGet, Prefix+"/users", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	logs := ts.repos.AccessLogs.All()
	require.NotEmpty(t, logs)
	assert.Equal(t, model.ActionAccessDenied, logs[0].Action)
	assert.True(t, strings.HasSuffix(logs[0].Details, "manageUsers"), logs[0].Details)
}

func TestUsers_Lifecycle(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(auditorEmail, auditorSchoolID)

	rec := ts.do(http.MethodPost, Prefix+"/users", model.User{
		Name: "Alice Lens", Email: "Lens@Light.edu", SchoolID: "2024-0007",
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created model.User
	decodeData(t, rec, &created)
	assert.Equal(t, "lens@light.edu", created.Email)
	assert.Equal(t, model.RoleJournalist, created.Role)

	rec = ts.do(http.MethodPost, Prefix+"/users", model.User{
		Name: "Copy", Email: "lens@light.edu", SchoolID: "2024-0008",
	}, cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The new account can sign in.
	ts.login("lens@light.edu", "2024-0007")

	rec = ts.do(http.MethodDelete, Prefix+"/users/"+created.ID, nil, cookie)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodDelete, Prefix+"/users/1", nil, cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(http.MethodGet, Prefix+"/users", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []model.User
	decodeData(t, rec, &users)
	assert.Len(t, users, 4)
}

func TestLoadUser_RemovedAccount(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(auditorEmail, auditorSchoolID)
	writer := ts.login(writerEmail, writerSchoolID)

	rec := ts.do(http.MethodDelete, Prefix+"/users/4", nil, admin)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodGet, Prefix+"/auth/me", nil, writer)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{30, "30 seconds"},
		{60, "1 minute"},
		{61, "2 minutes"},
		{15 * 60, "15 minutes"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(time.Duration(tt.seconds)*time.Second))
	}
}
