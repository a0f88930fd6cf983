// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the application
// including articles, pages, reports, notifications and the site configuration.
package model

// Role is the publication role of a user.
type Role string

// Roles, from most to least privileged.
const (
	RoleAuditor    Role = "AUDITOR"
	RoleEIC        Role = "EIC"
	RoleHead       Role = "HEAD"
	RoleJournalist Role = "JOURNALIST"
	RoleGuest      Role = "GUEST"
)

// GuestName is recorded for actions without an authenticated user.
const GuestName = "Guest"

// SocialLinks holds optional profile links.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// User is an account known to the auth directory.
// All role helpers accept a nil receiver, which stands for an anonymous reader.
type User struct {
	ID             string       `json:"id"`
	Name           string       `json:"name" validate:"required"`
	Username       string       `json:"username,omitempty"`
	Email          string       `json:"email" validate:"required,email"`
	SchoolID       string       `json:"schoolId,omitempty"`
	Role           Role         `json:"role" validate:"oneof=AUDITOR EIC HEAD JOURNALIST GUEST"`
	Avatar         string       `json:"avatar,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Specialization string       `json:"specialization,omitempty"`
	SocialLinks    *SocialLinks `json:"socialLinks,omitempty"`
}

// IsAdmin returns true for the site administrator role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAuditor
}

// IsPrivileged returns true for roles that manage all content.
func (u *User) IsPrivileged() bool {
	return u != nil && (u.Role == RoleAuditor || u.Role == RoleEIC)
}

// IsEditor returns true for roles that may review submissions.
func (u *User) IsEditor() bool {
	return u != nil && (u.Role == RoleAuditor || u.Role == RoleEIC || u.Role == RoleHead)
}

// IsStaff returns true for roles that may write articles.
func (u *User) IsStaff() bool {
	return u.IsEditor() || (u != nil && u.Role == RoleJournalist)
}

// IsMember returns true for any signed-in user.
func (u *User) IsMember() bool {
	return u != nil
}

// DisplayName returns the user's name, or GuestName for anonymous readers.
func (u *User) DisplayName() string {
	if u == nil || u.Name == "" {
		return GuestName
	}
	return u.Name
}

// UserID returns the user's id, or an empty string for anonymous readers.
func (u *User) UserID() string {
	if u == nil {
		return ""
	}
	return u.ID
}
