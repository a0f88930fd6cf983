// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestUserRoleHelpers(t *testing.T) {
	tests := []struct {
		name       string
		user       *User
		admin      bool
		privileged bool
		editor     bool
		staff      bool
		member     bool
	}{
		{name: "anonymous", user: nil},
		{name: "guest", user: &User{Role: RoleGuest}, member: true},
		{name: "journalist", user: &User{Role: RoleJournalist}, staff: true, member: true},
		{name: "head", user: &User{Role: RoleHead}, editor: true, staff: true, member: true},
		{name: "eic", user: &User{Role: RoleEIC}, privileged: true, editor: true, staff: true, member: true},
		{name: "auditor", user: &User{Role: RoleAuditor}, admin: true, privileged: true, editor: true, staff: true, member: true},
		{name: "lowercase role", user: &User{Role: "auditor"}, member: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.IsAdmin(); got != tt.admin {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.admin)
			}
			if got := tt.user.IsPrivileged(); got != tt.privileged {
				t.Errorf("IsPrivileged() = %v, want %v", got, tt.privileged)
			}
			if got := tt.user.IsEditor(); got != tt.editor {
				t.Errorf("IsEditor() = %v, want %v", got, tt.editor)
			}
			if got := tt.user.IsStaff(); got != tt.staff {
				t.Errorf("IsStaff() = %v, want %v", got, tt.staff)
			}
			if got := tt.user.IsMember(); got != tt.member {
				t.Errorf("IsMember() = %v, want %v", got, tt.member)
			}
		})
	}
}

func TestUserDisplayName(t *testing.T) {
	var anon *User
	if got := anon.DisplayName(); got != GuestName {
		t.Errorf("DisplayName() = %q, want %q", got, GuestName)
	}
	if got := anon.UserID(); got != "" {
		t.Errorf("UserID() = %q, want empty", got)
	}

	u := &User{ID: "2", Name: "Jane EIC"}
	if got := u.DisplayName(); got != "Jane EIC" {
		t.Errorf("DisplayName() = %q, want %q", got, "Jane EIC")
	}
	if got := u.UserID(); got != "2" {
		t.Errorf("UserID() = %q, want %q", got, "2")
	}
}

func TestPageVisibleTo(t *testing.T) {
	journalist := &User{Role: RoleJournalist}
	reader := &User{Role: RoleGuest}
	eic := &User{Role: RoleEIC}

	tests := []struct {
		name string
		page PageConfig
		user *User
		want bool
	}{
		{"public visible anonymous", PageConfig{IsVisible: true, AccessLevel: AccessPublic}, nil, true},
		{"hidden anonymous", PageConfig{IsVisible: false, AccessLevel: AccessPublic}, nil, false},
		{"hidden privileged", PageConfig{IsVisible: false, AccessLevel: AccessPublic}, eic, true},
		{"member anonymous", PageConfig{IsVisible: true, AccessLevel: AccessMember}, nil, false},
		{"member reader", PageConfig{IsVisible: true, AccessLevel: AccessMember}, reader, true},
		{"staff reader", PageConfig{IsVisible: true, AccessLevel: AccessStaff}, reader, false},
		{"staff journalist", PageConfig{IsVisible: true, AccessLevel: AccessStaff}, journalist, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.VisibleTo(tt.user); got != tt.want {
				t.Errorf("VisibleTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPageURL(t *testing.T) {
	static := &PageConfig{Slug: "about", Type: PageTypeStatic}
	if got := static.URL(); got != "/about" {
		t.Errorf("URL() = %q, want %q", got, "/about")
	}
	category := &PageConfig{Slug: "news", Type: PageTypeCategory}
	if got := category.URL(); got != "/category/news" {
		t.Errorf("URL() = %q, want %q", got, "/category/news")
	}
}
