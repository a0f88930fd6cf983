// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth provides the user directory used to sign readers and staff in.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/repository"
	"github.com/olegiv/newsroom/internal/service"
)

// Error is an auth error whose message is shown to the user as is.
type Error string

func (e Error) Error() string { return string(e) }

// ErrInvalidCredentials is returned when no user matches the email and school id.
const ErrInvalidCredentials Error = "Invalid credentials. Please check your Email and School ID."

// ErrEmailTaken is returned when creating a user with an email already in use.
var ErrEmailTaken = errors.New("email already in use")

// ErrSelfRemoval is returned when an administrator tries to remove their own account.
var ErrSelfRemoval = errors.New("cannot remove your own account")

// ProfileUpdate holds the profile fields a user may change. Nil fields are
// left as stored.
type ProfileUpdate struct {
	Name           *string            `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Avatar         *string            `json:"avatar,omitempty" validate:"omitempty,url"`
	Bio            *string            `json:"bio,omitempty" validate:"omitempty,max=1000"`
	Specialization *string            `json:"specialization,omitempty" validate:"omitempty,max=100"`
	SocialLinks    *model.SocialLinks `json:"socialLinks,omitempty"`
}

// Directory looks up and manages user accounts.
type Directory struct {
	users  *repository.UserRepository
	logger *slog.Logger
}

// NewDirectory creates a new Directory over users.
func NewDirectory(users *repository.UserRepository, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{users: users, logger: logger}
}

// Login returns the user with the given email and school id. The email is
// compared case-insensitively; both values are required.
func (d *Directory) Login(_ context.Context, email, schoolID string) (model.User, error) {
	email = strings.TrimSpace(email)
	schoolID = strings.TrimSpace(schoolID)
	if email == "" || schoolID == "" {
		return model.User{}, ErrInvalidCredentials
	}

	u, ok := d.users.ByEmail(email)
	if !ok || subtle.ConstantTimeCompare([]byte(u.SchoolID), []byte(schoolID)) != 1 {
		d.logger.Warn("login failed", "email", email)
		return model.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// GetByID returns the user with the given id.
func (d *Directory) GetByID(id string) (model.User, bool) {
	return d.users.Get(id)
}

// List returns every account. Only the administrator may list them.
func (d *Directory) List(actor *model.User) ([]model.User, error) {
	if !actor.IsAdmin() {
		return nil, service.ErrForbidden
	}
	return d.users.All(), nil
}

// Create adds an account with a generated id.
func (d *Directory) Create(ctx context.Context, actor *model.User, u model.User) (model.User, error) {
	if !actor.IsAdmin() {
		return model.User{}, service.ErrForbidden
	}
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = model.RoleJournalist
	}
	if err := service.Validate(u); err != nil {
		return model.User{}, err
	}

	u.ID = uuid.NewString()
	err := d.users.Mutate(ctx, func(users []model.User) ([]model.User, error) {
		for _, existing := range users {
			if strings.EqualFold(existing.Email, u.Email) {
				return nil, ErrEmailTaken
			}
		}
		return append(users, u), nil
	})
	if err != nil {
		return model.User{}, err
	}

	d.logger.Info("user created", "user_id", u.ID, "role", u.Role, "actor_id", actor.ID)
	return u, nil
}

// Remove deletes an account. The administrator cannot remove themselves.
func (d *Directory) Remove(ctx context.Context, actor *model.User, id string) error {
	if !actor.IsAdmin() {
		return service.ErrForbidden
	}
	if id == actor.ID {
		return ErrSelfRemoval
	}
	if err := d.users.Delete(ctx, id, nil); err != nil {
		return err
	}
	d.logger.Info("user removed", "user_id", id, "actor_id", actor.ID)
	return nil
}

// UpdateProfile merges p into the profile of user id. Users edit their own
// profile; the administrator may edit any.
func (d *Directory) UpdateProfile(ctx context.Context, actor *model.User, id string, p ProfileUpdate) (model.User, error) {
	if actor == nil {
		return model.User{}, service.ErrLoginRequired
	}
	if actor.ID != id && !actor.IsAdmin() {
		return model.User{}, service.ErrForbidden
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
	}
	if err := service.Validate(p); err != nil {
		return model.User{}, err
	}

	return d.users.Update(ctx, id, func(u *model.User) error {
		if p.Name != nil {
			u.Name = *p.Name
		}
		if p.Avatar != nil {
			u.Avatar = *p.Avatar
		}
		if p.Bio != nil {
			u.Bio = *p.Bio
		}
		if p.Specialization != nil {
			u.Specialization = *p.Specialization
		}
		if p.SocialLinks != nil {
			links := *p.SocialLinks
			u.SocialLinks = &links
		}
		return nil
	})
}
