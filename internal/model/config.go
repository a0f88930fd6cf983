// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Ticker speeds
const (
	TickerSlow   = "slow"
	TickerNormal = "normal"
	TickerFast   = "fast"
)

// ThemeConfig holds the publication branding.
type ThemeConfig struct {
	PublicationName    string `json:"publicationName"`
	PublicationSubtext string `json:"publicationSubtext"`
	LogoURL            string `json:"logoUrl"`
	PrimaryColor       string `json:"primaryColor"`
	AccentColor        string `json:"accentColor"`
}

// BreakingNews configures the site-wide ticker.
type BreakingNews struct {
	Enabled         bool   `json:"enabled"`
	Text            string `json:"text"`
	Link            string `json:"link,omitempty"`
	BgColor         string `json:"bgColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	Speed           string `json:"speed,omitempty"`
	LinkedArticleID string `json:"linkedArticleId,omitempty"`
}

// SystemConfig is the singleton site configuration.
type SystemConfig struct {
	MaintenanceMode  bool          `json:"maintenanceMode"`
	AllowGuestSignup bool          `json:"allowGuestSignup"`
	Theme            ThemeConfig   `json:"theme"`
	BreakingNews     *BreakingNews `json:"breakingNews,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate the singleton.
func (c SystemConfig) Clone() SystemConfig {
	if c.BreakingNews != nil {
		bn := *c.BreakingNews
		c.BreakingNews = &bn
	}
	return c
}

// ThemeUpdate changes only the theme fields that are set.
type ThemeUpdate struct {
	PublicationName    *string `json:"publicationName,omitempty"`
	PublicationSubtext *string `json:"publicationSubtext,omitempty"`
	LogoURL            *string `json:"logoUrl,omitempty"`
	PrimaryColor       *string `json:"primaryColor,omitempty" validate:"omitempty,hexcolor"`
	AccentColor        *string `json:"accentColor,omitempty" validate:"omitempty,hexcolor"`
}

// Apply merges the set fields into t.
func (u *ThemeUpdate) Apply(t *ThemeConfig) {
	if u == nil {
		return
	}
	setString(&t.PublicationName, u.PublicationName)
	setString(&t.PublicationSubtext, u.PublicationSubtext)
	setString(&t.LogoURL, u.LogoURL)
	setString(&t.PrimaryColor, u.PrimaryColor)
	setString(&t.AccentColor, u.AccentColor)
}

// BreakingNewsUpdate changes only the ticker fields that are set.
type BreakingNewsUpdate struct {
	Enabled         *bool   `json:"enabled,omitempty"`
	Text            *string `json:"text,omitempty"`
	Link            *string `json:"link,omitempty"`
	BgColor         *string `json:"bgColor,omitempty" validate:"omitempty,hexcolor"`
	TextColor       *string `json:"textColor,omitempty" validate:"omitempty,hexcolor"`
	Speed           *string `json:"speed,omitempty" validate:"omitempty,oneof=slow normal fast"`
	LinkedArticleID *string `json:"linkedArticleId,omitempty"`
}

// Apply merges the set fields into b.
func (u *BreakingNewsUpdate) Apply(b *BreakingNews) {
	if u == nil {
		return
	}
	if u.Enabled != nil {
		b.Enabled = *u.Enabled
	}
	setString(&b.Text, u.Text)
	setString(&b.Link, u.Link)
	setString(&b.BgColor, u.BgColor)
	setString(&b.TextColor, u.TextColor)
	setString(&b.Speed, u.Speed)
	setString(&b.LinkedArticleID, u.LinkedArticleID)
}

// SystemConfigUpdate is a partial update of the site configuration.
// Top-level scalars replace; nested structures merge field by field.
type SystemConfigUpdate struct {
	MaintenanceMode  *bool               `json:"maintenanceMode,omitempty"`
	AllowGuestSignup *bool               `json:"allowGuestSignup,omitempty"`
	Theme            *ThemeUpdate        `json:"theme,omitempty"`
	BreakingNews     *BreakingNewsUpdate `json:"breakingNews,omitempty"`
}

// IsEmpty returns true if the update changes nothing.
func (u SystemConfigUpdate) IsEmpty() bool {
	return u.MaintenanceMode == nil && u.AllowGuestSignup == nil && u.Theme == nil && u.BreakingNews == nil
}

// Apply returns cfg with the update merged in. cfg itself is not modified.
func (u SystemConfigUpdate) Apply(cfg SystemConfig) SystemConfig {
	out := cfg.Clone()
	if u.MaintenanceMode != nil {
		out.MaintenanceMode = *u.MaintenanceMode
	}
	if u.AllowGuestSignup != nil {
		out.AllowGuestSignup = *u.AllowGuestSignup
	}
	u.Theme.Apply(&out.Theme)
	if u.BreakingNews != nil {
		if out.BreakingNews == nil {
			out.BreakingNews = &BreakingNews{Speed: TickerNormal}
		}
		u.BreakingNews.Apply(out.BreakingNews)
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
