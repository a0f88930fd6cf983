// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/store"
	"github.com/olegiv/newsroom/internal/util"
)

// ArticleRepository holds every article, most recently created first.
type ArticleRepository struct {
	*Collection[model.Article]
}

// NewArticleRepository loads the articles collection.
func NewArticleRepository(ctx context.Context, s *store.Store, now time.Time) *ArticleRepository {
	return &ArticleRepository{NewCollection(ctx, s, KeyArticles, DefaultArticles(now),
		func(a *model.Article) string { return a.ID }, nil)}
}

// BySlug returns the article with the given slug, in any status.
func (r *ArticleRepository) BySlug(slug string) (model.Article, bool) {
	return r.Find(func(a *model.Article) bool { return a.Slug == slug })
}

// SlugTaken reports whether an article other than exceptID uses slug.
func (r *ArticleRepository) SlugTaken(slug, exceptID string) bool {
	_, ok := r.Find(func(a *model.Article) bool { return a.Slug == slug && a.ID != exceptID })
	return ok
}

// Insert prepends a. Its slug is replaced by the first free variant of
// a.Slug, checked under the same lock as the insert.
func (r *ArticleRepository) Insert(ctx context.Context, a model.Article) model.Article {
	r.Apply(ctx, func(items []model.Article) []model.Article {
		a.Slug = util.UniqueSlug(a.Slug, func(s string) bool {
			return slugUsed(items, s, "")
		})
		return append([]model.Article{a}, items...)
	})
	return a
}

// Edit applies fn to the article with the given id. slugFree reports whether
// a slug is unused by every other article and may only be called inside fn.
func (r *ArticleRepository) Edit(ctx context.Context, id string, fn func(a *model.Article, slugFree func(string) bool) error) (model.Article, error) {
	return r.Update(ctx, id, func(a *model.Article) error {
		return fn(a, func(s string) bool { return !slugUsed(r.items, s, id) })
	})
}

func slugUsed(items []model.Article, slug, exceptID string) bool {
	for i := range items {
		if items[i].Slug == slug && items[i].ID != exceptID {
			return true
		}
	}
	return false
}

// Published returns published articles, optionally limited to one category,
// newest first.
func (r *ArticleRepository) Published(category string) []model.Article {
	out := r.Filter(func(a *model.Article) bool {
		return a.IsPublished() && (category == "" || a.CategorySlug == category)
	})
	SortNewestFirst(out)
	return out
}

// ByStatus returns articles in the given status, newest first.
func (r *ArticleRepository) ByStatus(status model.ArticleStatus) []model.Article {
	out := r.Filter(func(a *model.Article) bool { return a.Status == status })
	SortNewestFirst(out)
	return out
}

// ByAuthor returns the articles written by authorID in collection order.
func (r *ArticleRepository) ByAuthor(authorID string) []model.Article {
	return r.Filter(func(a *model.Article) bool { return a.AuthorID == authorID })
}

// SortNewestFirst orders articles by PublishedAt descending. Equal timestamps
// keep their collection order.
func SortNewestFirst(articles []model.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}

// ErrSystemPage is returned when deleting a page that the site depends on.
var ErrSystemPage = errors.New("system pages cannot be deleted")

// ErrSlugTaken is returned when a page slug is already used by another page.
var ErrSlugTaken = errors.New("slug already in use")

// PageRepository holds the navigation pages.
type PageRepository struct {
	*Collection[model.PageConfig]
}

// NewPageRepository loads the pages collection.
func NewPageRepository(ctx context.Context, s *store.Store) *PageRepository {
	return &PageRepository{NewCollection(ctx, s, KeyPages, DefaultPages(),
		func(p *model.PageConfig) string { return p.ID }, nil)}
}

// Ordered returns every page sorted by OrderScore ascending.
func (r *PageRepository) Ordered() []model.PageConfig {
	out := r.All()
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderScore < out[j].OrderScore })
	return out
}

// BySlug returns the page with the given slug.
func (r *PageRepository) BySlug(slug string) (model.PageConfig, bool) {
	return r.Find(func(p *model.PageConfig) bool { return p.Slug == slug })
}

// Create appends a page after checking slug uniqueness.
func (r *PageRepository) Create(ctx context.Context, p model.PageConfig) error {
	return r.Mutate(ctx, func(pages []model.PageConfig) ([]model.PageConfig, error) {
		for i := range pages {
			if pages[i].Slug == p.Slug {
				return nil, ErrSlugTaken
			}
		}
		return append(pages, p), nil
	})
}

// Replace overwrites the page with the same id. IsSystem is kept from the
// stored page.
func (r *PageRepository) Replace(ctx context.Context, p model.PageConfig) (model.PageConfig, error) {
	return r.Update(ctx, p.ID, func(stored *model.PageConfig) error {
		if r.slugTakenLocked(p.Slug, p.ID) {
			return ErrSlugTaken
		}
		system := stored.IsSystem
		*stored = p
		stored.IsSystem = system
		return nil
	})
}

// slugTakenLocked reports whether another page uses slug. It reads the
// collection without locking and must only be called from inside a mutation.
func (r *PageRepository) slugTakenLocked(slug, exceptID string) bool {
	for i := range r.items {
		if r.items[i].Slug == slug && r.items[i].ID != exceptID {
			return true
		}
	}
	return false
}

// Remove deletes a non-system page.
func (r *PageRepository) Remove(ctx context.Context, id string) error {
	return r.Delete(ctx, id, func(p *model.PageConfig) error {
		if p.IsSystem {
			return ErrSystemPage
		}
		return nil
	})
}
