// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/repository"
	"github.com/olegiv/newsroom/internal/util"
)

// PageService manages the navigation pages.
type PageService struct {
	repo   *repository.PageRepository
	logger *slog.Logger
}

// NewPageService creates a new PageService.
func NewPageService(repo *repository.PageRepository, logger *slog.Logger) *PageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageService{repo: repo, logger: logger}
}

// Navigation returns the pages actor may see, in menu order.
func (s *PageService) Navigation(actor *model.User) []model.PageConfig {
	pages := s.repo.Ordered()
	out := pages[:0]
	for _, p := range pages {
		if p.VisibleTo(actor) {
			out = append(out, p)
		}
	}
	return out
}

// List returns every page in menu order, hidden ones included.
func (s *PageService) List(actor *model.User) ([]model.PageConfig, error) {
	if !actor.IsPrivileged() {
		return nil, ErrForbidden
	}
	return s.repo.Ordered(), nil
}

// GetBySlug returns the page with the given slug if actor may see it.
func (s *PageService) GetBySlug(actor *model.User, slug string) (model.PageConfig, bool) {
	p, ok := s.repo.BySlug(slug)
	if !ok || !p.VisibleTo(actor) {
		return model.PageConfig{}, false
	}
	return p, true
}

func preparePage(p *model.PageConfig) error {
	p.Title = strings.TrimSpace(p.Title)
	p.Slug = strings.TrimSpace(p.Slug)
	if p.Slug == "" {
		p.Slug = util.Slugify(p.Title)
	}
	if p.AccessLevel == "" {
		p.AccessLevel = model.AccessPublic
	}
	if err := Validate(*p); err != nil {
		return err
	}
	if !util.IsValidSlug(p.Slug) {
		return invalid("slug", "must contain only lowercase letters, numbers and hyphens")
	}
	return nil
}

// Create adds a page. System pages cannot be created through the API.
func (s *PageService) Create(ctx context.Context, actor *model.User, p model.PageConfig) (model.PageConfig, error) {
	if !actor.IsPrivileged() {
		return model.PageConfig{}, ErrForbidden
	}
	if err := preparePage(&p); err != nil {
		return model.PageConfig{}, err
	}

	p.ID = uuid.NewString()
	p.IsSystem = false
	if err := s.repo.Create(ctx, p); err != nil {
		return model.PageConfig{}, err
	}
	s.logger.Info("page created", "page_id", p.ID, "slug", p.Slug)
	return p, nil
}

// Update replaces the page with the given id. Whether the page is a system
// page cannot be changed.
func (s *PageService) Update(ctx context.Context, actor *model.User, id string, p model.PageConfig) (model.PageConfig, error) {
	if !actor.IsPrivileged() {
		return model.PageConfig{}, ErrForbidden
	}
	if err := preparePage(&p); err != nil {
		return model.PageConfig{}, err
	}

	p.ID = id
	return s.repo.Replace(ctx, p)
}

// Delete removes a page. System pages are refused with
// repository.ErrSystemPage.
func (s *PageService) Delete(ctx context.Context, actor *model.User, id string) error {
	if !actor.IsPrivileged() {
		return ErrForbidden
	}
	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}
	s.logger.Info("page deleted", "page_id", id, "actor_id", actor.ID)
	return nil
}
