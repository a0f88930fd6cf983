// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/service"
)

func TestListArticles(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, Prefix+"/articles", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var articles []model.Article
	decodeData(t, rec, &articles)
	require.Len(t, articles, 4)
	for _, a := range articles {
		assert.Equal(t, model.ArticleStatusPublished, a.Status)
	}

	rec = ts.do(http.MethodGet, Prefix+"/articles?category=sports", nil, nil)
	decodeData(t, rec, &articles)
	require.Len(t, articles, 1)
	assert.Equal(t, "103", articles[0].ID)
}

func TestListAllArticles_Forbidden(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(writerEmail, writerSchoolID)

	rec := ts.do(http.MethodGet, Prefix+"/articles/all", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	logs := ts.repos.AccessLogs.All()
	assert.Equal(t, model.ActionAccessDenied, logs[0].Action)
	assert.Equal(t, "4", logs[0].UserID)

	cookie = ts.login(eicEmail, eicSchoolID)
	rec = ts.do(http.MethodGet, Prefix+"/articles/all", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var articles []model.Article
	decodeData(t, rec, &articles)
	assert.Len(t, articles, 6)
}

func TestGetArticleBySlug(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, Prefix+"/articles/slug/light-shines-brighter", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view ArticleView
	decodeData(t, rec, &view)
	assert.Equal(t, "101", view.ID)
	assert.False(t, view.Locked)
	assert.NotEmpty(t, view.Content)

	logs := ts.repos.AccessLogs.All()
	assert.Equal(t, model.ActionViewArticle, logs[0].Action)
	assert.Equal(t, model.GuestName, logs[0].UserName)
}

func TestGetArticleBySlug_MemberOnly(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, Prefix+"/articles/slug/why-we-need-longer-breaks", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view ArticleView
	decodeData(t, rec, &view)
	assert.True(t, view.Locked)
	assert.Empty(t, view.Content)

	cookie := ts.login(writerEmail, writerSchoolID)
	rec = ts.do(http.MethodGet, Prefix+"/articles/slug/why-we-need-longer-breaks", nil, cookie)
	view = ArticleView{}
	decodeData(t, rec, &view)
	assert.False(t, view.Locked)
	assert.NotEmpty(t, view.Content)
}

func TestListArticles_MemberOnlyLocked(t *testing.T) {
	ts := newTestServer(t)

	find := func(views []ArticleView, id string) ArticleView {
		t.Helper()
		for _, v := range views {
			if v.ID == id {
				return v
			}
		}
		t.Fatalf("article %s missing from list", id)
		return ArticleView{}
	}

	rec := ts.do(http.MethodGet, Prefix+"/articles", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var views []ArticleView
	decodeData(t, rec, &views)
	locked := find(views, "102")
	assert.True(t, locked.Locked)
	assert.Empty(t, locked.Content)
	assert.NotEmpty(t, find(views, "103").Content)

	rec = ts.do(http.MethodPost, Prefix+"/articles/bookmarks", BookmarksRequest{
		Slugs: []string{"why-we-need-longer-breaks"},
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bookmarked []ArticleView
	decodeData(t, rec, &bookmarked)
	require.Len(t, bookmarked, 1)
	assert.True(t, bookmarked[0].Locked)
	assert.Empty(t, bookmarked[0].Content)

	cookie := ts.login(writerEmail, writerSchoolID)
	rec = ts.do(http.MethodGet, Prefix+"/articles", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var memberViews []ArticleView
	decodeData(t, rec, &memberViews)
	unlocked := find(memberViews, "102")
	assert.False(t, unlocked.Locked)
	assert.NotEmpty(t, unlocked.Content)
}

func TestGetArticleBySlug_UnpublishedHiddenFromReaders(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, Prefix+"/articles/slug/draft-canteen-prices", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	cookie := ts.login(writerEmail, writerSchoolID)
	rec = ts.do(http.MethodGet, Prefix+"/articles/slug/draft-canteen-prices", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, Prefix+"/articles/slug/no-such-article", nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeaturedAndRelated(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, Prefix+"/articles/featured", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view ArticleView
	decodeData(t, rec, &view)
	assert.Equal(t, "101", view.ID)

	rec = ts.do(http.MethodGet, Prefix+"/articles/101/related", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var related []model.Article
	decodeData(t, rec, &related)
	for _, a := range related {
		assert.NotEqual(t, "101", a.ID)
		assert.Equal(t, "news", a.CategorySlug)
	}

	rec = ts.do(http.MethodGet, Prefix+"/articles/999/related", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookmarks(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, Prefix+"/articles/bookmarks", BookmarksRequest{
		Slugs: []string{"varsity-finals", "draft-canteen-prices", "missing"},
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var articles []model.Article
	decodeData(t, rec, &articles)
	require.Len(t, articles, 1)
	assert.Equal(t, "varsity-finals", articles[0].Slug)
}

func TestArticleWorkflow(t *testing.T) {
	ts := newTestServer(t)
	writer := ts.login(writerEmail, writerSchoolID)
	eic := ts.login(eicEmail, eicSchoolID)

	rec := ts.do(http.MethodPost, Prefix+"/articles", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodPost, Prefix+"/articles", service.ArticleInput{
		Title:        "Library Opens Late",
		Excerpt:      "Extended hours start Monday.",
		Content:      "The library will stay open until nine.",
		CategorySlug: "news",
	}, writer)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var a model.Article
	decodeData(t, rec, &a)
	assert.Equal(t, model.ArticleStatusDraft, a.Status)
	assert.Equal(t, "library-opens-late", a.Slug)
	assert.Equal(t, "4", a.AuthorID)

	// Journalists cannot publish.
	rec = ts.do(http.MethodPost, Prefix+"/articles/"+a.ID+"/status", StatusRequest{Status: model.ArticleStatusPublished}, writer)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(http.MethodPost, Prefix+"/articles/"+a.ID+"/status", StatusRequest{Status: model.ArticleStatusPending}, writer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &a)
	assert.Equal(t, model.ArticleStatusPending, a.Status)

	rec = ts.do(http.MethodGet, Prefix+"/articles/review-queue", nil, eic)
	require.Equal(t, http.StatusOK, rec.Code)
	var queue []model.Article
	decodeData(t, rec, &queue)
	assert.Len(t, queue, 2)

	rec = ts.do(http.MethodPost, Prefix+"/articles/"+a.ID+"/status", StatusRequest{
		Status: model.ArticleStatusPublished, Feedback: "Nice work.",
	}, eic)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &a)
	assert.Equal(t, model.ArticleStatusPublished, a.Status)
	assert.Equal(t, "Nice work.", a.Feedback)

	// Published articles cannot go back to draft.
	rec = ts.do(http.MethodPost, Prefix+"/articles/"+a.ID+"/status", StatusRequest{Status: model.ArticleStatusDraft}, eic)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The author was told.
	rec = ts.do(http.MethodGet, Prefix+"/notifications/unread", nil, writer)
	require.Equal(t, http.StatusOK, rec.Code)
	var unread UnreadResponse
	decodeData(t, rec, &unread)
	assert.Equal(t, 1, unread.Unread)
}

func TestCreateArticle_Validation(t *testing.T) {
	ts := newTestServer(t)
	writer := ts.login(writerEmail, writerSchoolID)

	rec := ts.do(http.MethodPost, Prefix+"/articles", service.ArticleInput{
		Content:  "No title.",
		ImageURL: "not-a-url",
	}, writer)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	details := decodeError(t, rec).Details
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "categorySlug")
	assert.Contains(t, details, "imageUrl")
}

func TestMySubmissions(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, Prefix+"/articles/mine", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	writer := ts.login(writerEmail, writerSchoolID)
	rec = ts.do(http.MethodGet, Prefix+"/articles/mine", nil, writer)
	require.Equal(t, http.StatusOK, rec.Code)

	var mine []model.Article
	decodeData(t, rec, &mine)
	require.NotEmpty(t, mine)
	assert.Equal(t, model.ArticleStatusDraft, mine[0].Status)
	for _, a := range mine {
		assert.Equal(t, "4", a.AuthorID)
	}
}

func TestToggleFeatureAndDelete(t *testing.T) {
	ts := newTestServer(t)
	eic := ts.login(eicEmail, eicSchoolID)

	rec := ts.do(http.MethodPost, Prefix+"/articles/103/feature", nil, eic)
	require.Equal(t, http.StatusOK, rec.Code)
	var a model.Article
	decodeData(t, rec, &a)
	assert.True(t, a.IsFeatured)

	rec = ts.do(http.MethodPost, Prefix+"/articles/201/feature", nil, eic)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(http.MethodDelete, Prefix+"/articles/103", nil, eic)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodDelete, Prefix+"/articles/103", nil, eic)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIncrementViews(t *testing.T) {
	ts := newTestServer(t)

	before, _ := ts.repos.Articles.Get("101")
	rec := ts.do(http.MethodPost, Prefix+"/articles/101/views", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var views map[string]int64
	decodeData(t, rec, &views)
	assert.Equal(t, before.Views+1, views["views"])

	rec = ts.do(http.MethodPost, Prefix+"/articles/999/views", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReact(t *testing.T) {
	ts := newTestServer(t)
	before, _ := ts.repos.Articles.Get("101")

	rec := ts.do(http.MethodPost, Prefix+"/articles/101/reactions", ReactionRequest{Reaction: "love"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var counts model.ArticleReactions
	decodeData(t, rec, &counts)
	assert.Equal(t, before.Reactions.Love+1, counts.Love)

	// The same reader counts once.
	rec = ts.do(http.MethodPost, Prefix+"/articles/101/reactions", ReactionRequest{Reaction: "love"}, nil)
	decodeData(t, rec, &counts)
	assert.Equal(t, before.Reactions.Love+1, counts.Love)

	// A signed-in reader is a different identity.
	writer := ts.login(writerEmail, writerSchoolID)
	rec = ts.do(http.MethodPost, Prefix+"/articles/101/reactions", ReactionRequest{Reaction: "love"}, writer)
	decodeData(t, rec, &counts)
	assert.Equal(t, before.Reactions.Love+2, counts.Love)

	rec = ts.do(http.MethodPost, Prefix+"/articles/101/reactions", ReactionRequest{Reaction: "angry"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = ts.do(http.MethodPost, Prefix+"/articles/999/reactions", ReactionRequest{Reaction: "like"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
