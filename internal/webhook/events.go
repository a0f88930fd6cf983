// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package webhook provides outbound event dispatching and delivery.
package webhook

import (
	"time"
)

// Event types
const (
	EventArticleCreated       = "article.created"
	EventArticleUpdated       = "article.updated"
	EventArticleStatusChanged = "article.status_changed"
	EventArticleDeleted       = "article.deleted"
	EventReportCreated        = "report.created"
	EventReportResolved       = "report.resolved"
	EventNotificationCreated  = "notification.created"
	EventConfigUpdated        = "config.updated"
)

// Event represents a webhook event to be dispatched.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// NewEvent creates a new webhook event.
func NewEvent(eventType string, data any) *Event {
	return &Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Entity is implemented by event payloads that describe a single entity.
// The debouncer coalesces events with the same type and entity id.
type Entity interface {
	EntityID() string
}

// ArticleEventData contains data for article events.
type ArticleEventData struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	AuthorID   string `json:"authorId"`
	Status     string `json:"status"`
	FromStatus string `json:"fromStatus,omitempty"`
	ActorID    string `json:"actorId,omitempty"`
}

// EntityID implements Entity.
func (d ArticleEventData) EntityID() string { return d.ID }

// ReportEventData contains data for report events.
type ReportEventData struct {
	ID        string `json:"id"`
	ArticleID string `json:"articleId"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
}

// EntityID implements Entity.
func (d ReportEventData) EntityID() string { return d.ID }

// NotificationEventData contains data for notification events.
type NotificationEventData struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// EntityID implements Entity.
func (d NotificationEventData) EntityID() string { return d.ID }
