// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/newsroom/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func TestSystemConfig(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, Prefix+"/system/config", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cfg model.SystemConfig
	decodeData(t, rec, &cfg)
	require.NotNil(t, cfg.BreakingNews)
	assert.True(t, cfg.BreakingNews.Enabled)

	update := model.SystemConfigUpdate{
		BreakingNews: &model.BreakingNewsUpdate{Text: strPtr("Exams moved to Friday.")},
	}

	eic := ts.login(eicEmail, eicSchoolID)
	rec = ts.do(http.MethodPut, Prefix+"/system/config", update, eic)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := ts.login(auditorEmail, auditorSchoolID)
	rec = ts.do(http.MethodPut, Prefix+"/system/config", update, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &cfg)
	assert.Equal(t, "Exams moved to Friday.", cfg.BreakingNews.Text)
	assert.Equal(t, "#DC2626", cfg.BreakingNews.BgColor)

	rec = ts.do(http.MethodPut, Prefix+"/system/config", model.SystemConfigUpdate{
		Theme: &model.ThemeUpdate{PrimaryColor: strPtr("blue")},
	}, admin)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Details, "theme.primaryColor")
}

func TestMaintenanceMode(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(auditorEmail, auditorSchoolID)
	writer := ts.login(writerEmail, writerSchoolID)

	rec := ts.do(http.MethodPut, Prefix+"/system/config", model.SystemConfigUpdate{MaintenanceMode: boolPtr(true)}, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, Prefix+"/articles", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "maintenance", decodeError(t, rec).Code)

	rec = ts.do(http.MethodGet, Prefix+"/articles", nil, writer)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = ts.do(http.MethodGet, Prefix+"/articles", nil, admin)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Readers can still see the configuration and sign in.
	rec = ts.do(http.MethodGet, Prefix+"/system/config", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	ts.login(eicEmail, eicSchoolID)

	rec = ts.do(http.MethodPut, Prefix+"/system/config", model.SystemConfigUpdate{MaintenanceMode: boolPtr(false)}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(http.MethodGet, Prefix+"/articles", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSearch(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, Prefix+"/search?q=VARSITY", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var results []model.SearchResult
	decodeData(t, rec, &results)
	require.NotEmpty(t, results)
	assert.Equal(t, model.SearchTypeArticle, results[0].Type)
	assert.Equal(t, "/article/varsity-finals", results[0].URL)

	rec = ts.do(http.MethodGet, Prefix+"/search?q=canteen", nil, nil)
	decodeData(t, rec, &results)
	assert.Empty(t, results)

	rec = ts.do(http.MethodGet, Prefix+"/search", nil, nil)
	decodeData(t, rec, &results)
	assert.Empty(t, results)

	rec = ts.do(http.MethodGet, Prefix+"/search/catalog", nil, nil)
	decodeData(t, rec, &results)
	assert.Len(t, results, 4+11)
}

func TestAccessLogs(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, Prefix+"/access-logs", nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	eic := ts.login(eicEmail, eicSchoolID)
	rec = ts.do(http.MethodGet, Prefix+"/access-logs", nil, eic)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := ts.login(auditorEmail, auditorSchoolID)
	rec = ts.do(http.MethodGet, Prefix+"/access-logs", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	var logs []model.AccessLog
	decodeData(t, rec, &logs)
	require.GreaterOrEqual(t, len(logs), 4)
	assert.Equal(t, model.ActionLogin, logs[0].Action)
	assert.Equal(t, "1", logs[0].UserID)
	assert.Equal(t, model.ActionAccessDenied, logs[1].Action)
	assert.Equal(t, "2", logs[1].UserID)
}

func TestPages(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, Prefix+"/pages/navigation", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var nav []NavigationItem
	decodeData(t, rec, &nav)
	require.Len(t, nav, 11)
	assert.Equal(t, "/category/editorial", nav[0].URL)
	assert.Equal(t, "/gallery", nav[6].URL)

	rec = ts.do(http.MethodGet, Prefix+"/pages", nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	eic := ts.login(eicEmail, eicSchoolID)
	rec = ts.do(http.MethodPost, Prefix+"/pages", model.PageConfig{
		Title: "Staff Room", Type: model.PageTypeStatic, AccessLevel: model.AccessStaff,
		IsVisible: true, IsSystem: true, OrderScore: 12,
	}, eic)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var page model.PageConfig
	decodeData(t, rec, &page)
	assert.Equal(t, "staff-room", page.Slug)
	assert.False(t, page.IsSystem)

	rec = ts.do(http.MethodPost, Prefix+"/pages", model.PageConfig{
		Title: "Staff Room", Type: model.PageTypeStatic,
	}, eic)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Staff pages stay out of the anonymous menu.
	rec = ts.do(http.MethodGet, Prefix+"/pages/slug/staff-room", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = ts.do(http.MethodGet, Prefix+"/pages/slug/staff-room", nil, eic)
	assert.Equal(t, http.StatusOK, rec.Code)

	page.Title = "Staff Lounge"
	rec = ts.do(http.MethodPut, Prefix+"/pages/"+page.ID, page, eic)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &page)
	assert.Equal(t, "Staff Lounge", page.Title)

	rec = ts.do(http.MethodDelete, Prefix+"/pages/1", nil, eic)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(http.MethodDelete, Prefix+"/pages/"+page.ID, nil, eic)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

type fakeStoreStatus struct {
	err     error
	pending []string
}

func (f fakeStoreStatus) Ping(context.Context) error { return f.err }
func (f fakeStoreStatus) Pending() []string { return f.pending }

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	admin := ts.login(auditorEmail, auditorSchoolID)
	rec = ts.do(http.MethodGet, "/health?verbose=true", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"persistence"`)
	assert.Contains(t, rec.Body.String(), `"go_version"`)

	ts.handler.health = NewHealthChecker(fakeStoreStatus{pending: []string{"tl_articles"}}, "test")
	rec = ts.do(http.MethodGet, "/health", nil, admin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tl_articles")
	assert.Contains(t, rec.Body.String(), `"degraded"`)

	ts.handler.health = NewHealthChecker(fakeStoreStatus{err: errors.New("connection refused")}, "test")
	rec = ts.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = ts.do(http.MethodGet, "/health/ready", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = ts.do(http.MethodGet, "/health/live", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	ts.do(http.MethodGet, Prefix+"/articles", nil, nil)
	rec := ts.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "newsroom_http_requests_total"), "request counter missing")
}

func TestSecurityHeaders(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, Prefix+"/poll", nil, nil)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
