// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Report statuses
const (
	ReportStatusOpen      = "open"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// ArticleReport is a reader complaint about an article.
type ArticleReport struct {
	ID           string    `json:"id"`
	ArticleID    string    `json:"articleId"`
	ArticleTitle string    `json:"articleTitle"`
	ArticleSlug  string    `json:"articleSlug"`
	ReporterID   string    `json:"reporterId,omitempty"`
	Reason       string    `json:"reason"`
	Details      string    `json:"details,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Status       string    `json:"status"`
}

// IsOpen returns true if the report still awaits moderation.
func (r *ArticleReport) IsOpen() bool {
	return r.Status == ReportStatusOpen
}

// Notification types
const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// Notification is a message addressed to one user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is a reader comment on an article.
type Comment struct {
	ID           string    `json:"id"`
	ArticleID    string    `json:"articleId"`
	ArticleTitle string    `json:"articleTitle,omitempty"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ContactMessage is a message sent through the public contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	IsRead    bool      `json:"isRead"`
}
