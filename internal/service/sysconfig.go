// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"

	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/repository"
	"github.com/olegiv/newsroom/internal/webhook"
)

// ConfigService reads and changes the site configuration.
type ConfigService struct {
	repo   *repository.SystemConfigRepository
	audit  *AuditService
	events Publisher
	logger *slog.Logger
}

// NewConfigService creates a new ConfigService.
func NewConfigService(repo *repository.SystemConfigRepository, audit *AuditService, events Publisher, logger *slog.Logger) *ConfigService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigService{repo: repo, audit: audit, events: events, logger: logger}
}

// Get returns the current configuration.
func (s *ConfigService) Get() model.SystemConfig {
	return s.repo.Get()
}

// InMaintenance reports whether the site is in maintenance mode.
func (s *ConfigService) InMaintenance() bool {
	return s.repo.Get().MaintenanceMode
}

// Update merges u into the configuration. Only the auditor may change it.
// Nested theme and breaking news updates change only the fields they set.
func (s *ConfigService) Update(ctx context.Context, actor *model.User, u model.SystemConfigUpdate) (model.SystemConfig, error) {
	if !actor.IsAdmin() {
		return model.SystemConfig{}, ErrForbidden
	}
	if err := Validate(u); err != nil {
		return model.SystemConfig{}, err
	}
	if u.IsEmpty() {
		return s.repo.Get(), nil
	}

	cfg, err := s.repo.Update(ctx, func(cfg *model.SystemConfig) error {
		*cfg = u.Apply(*cfg)
		return nil
	})
	if err != nil {
		return model.SystemConfig{}, err
	}

	s.audit.Record(ctx, model.ActionSystemChange, "Updated system configuration or theme.", actor)
	s.logger.Info("system configuration updated",
		"actor_id", actor.ID,
		"maintenance", cfg.MaintenanceMode)
	publish(ctx, s.events, s.logger, webhook.EventConfigUpdated, map[string]any{
		"maintenanceMode":  cfg.MaintenanceMode,
		"allowGuestSignup": cfg.AllowGuestSignup,
	})
	return cfg, nil
}
