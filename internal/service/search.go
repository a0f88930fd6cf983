// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"strings"

	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/repository"
)

// SearchService finds published articles and visible pages by substring.
type SearchService struct {
	articles *repository.ArticleRepository
	pages    *repository.PageRepository
}

// NewSearchService creates a new SearchService.
func NewSearchService(articles *repository.ArticleRepository, pages *repository.PageRepository) *SearchService {
	return &SearchService{articles: articles, pages: pages}
}

// Search matches query case-insensitively against article titles and
// content, then page titles. Results keep collection order: articles first.
// A blank query returns no results.
func (s *SearchService) Search(query string) []model.SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []model.SearchResult{}
	}
	return s.collect(func(text ...string) bool {
		for _, t := range text {
			if strings.Contains(strings.ToLower(t), q) {
				return true
			}
		}
		return false
	})
}

// Catalog returns every published article and visible page.
func (s *SearchService) Catalog() []model.SearchResult {
	return s.collect(func(...string) bool { return true })
}

func (s *SearchService) collect(match func(text ...string) bool) []model.SearchResult {
	articles := s.articles.Filter(func(a *model.Article) bool {
		return a.IsPublished() && match(a.Title, a.Content)
	})
	pages := s.pages.Filter(func(p *model.PageConfig) bool {
		return p.IsVisible && match(p.Title)
	})

	results := make([]model.SearchResult, 0, len(articles)+len(pages))
	for _, a := range articles {
		results = append(results, model.SearchResult{
			Type:        model.SearchTypeArticle,
			Title:       a.Title,
			URL:         "/article/" + a.Slug,
			Description: a.Excerpt,
		})
	}
	for _, p := range pages {
		desc := p.Description
		if desc == "" {
			desc = "Page"
		}
		results = append(results, model.SearchResult{
			Type:        model.SearchTypePage,
			Title:       p.Title,
			URL:         p.URL(),
			Description: desc,
		})
	}
	return results
}
