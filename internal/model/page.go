// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Page types
const (
	PageTypeStatic   = "static"
	PageTypeCategory = "category"
)

// Page access levels
const (
	AccessPublic = "public"
	AccessMember = "member"
	AccessStaff  = "staff"
)

// PageConfig is a navigation entry: either a category listing or a static page.
type PageConfig struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Type        string `json:"type" validate:"oneof=static category"`
	Description string `json:"description,omitempty"`
	IsSystem    bool   `json:"isSystem"`
	IsVisible   bool   `json:"isVisible"`
	AccessLevel string `json:"accessLevel" validate:"oneof=public member staff"`
	OrderScore  int    `json:"orderScore"`
}

// URL returns the public path of the page.
func (p *PageConfig) URL() string {
	if p.Type == PageTypeStatic {
		return "/" + p.Slug
	}
	return "/category/" + p.Slug
}

// VisibleTo reports whether a reader with the given role can see the page
// in navigation. Hidden pages are shown only to privileged users.
func (p *PageConfig) VisibleTo(u *User) bool {
	if !p.IsVisible && !u.IsPrivileged() {
		return false
	}
	switch p.AccessLevel {
	case AccessMember:
		return u.IsMember()
	case AccessStaff:
		return u.IsStaff()
	default:
		return true
	}
}
