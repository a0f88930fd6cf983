// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Search result types
const (
	SearchTypeArticle = "article"
	SearchTypePage    = "page"
)

// SearchResult is one hit of the site search.
type SearchResult struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// PrintEdition is a scanned print issue.
type PrintEdition struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CoverURL    string `json:"coverUrl"`
	PDFURL      string `json:"pdfUrl"`
	PublishDate string `json:"publishDate"`
	Volume      string `json:"volume"`
}

// TeamMember is a staff profile on the about page.
type TeamMember struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Role        string       `json:"role"`
	Bio         string       `json:"bio"`
	AvatarURL   string       `json:"avatarUrl"`
	Email       string       `json:"email,omitempty"`
	SocialLinks *SocialLinks `json:"socialLinks,omitempty"`
}

// GalleryAlbum is a photo collection.
type GalleryAlbum struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	CoverURL   string   `json:"coverUrl"`
	ImageCount int      `json:"imageCount"`
	Images     []string `json:"images"`
}

// Video is an entry of the video library.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	VideoURL     string `json:"videoUrl"`
	Category     string `json:"category"`
	PublishedAt  string `json:"publishedAt"`
}
