// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Access log actions
const (
	ActionLogin        = "LOGIN"
	ActionViewArticle  = "VIEW_ARTICLE"
	ActionSystemChange = "SYSTEM_CHANGE"
	ActionAccessDenied = "ACCESS_DENIED"
)

// IsAccessAction reports whether action is one of the audited action kinds.
func IsAccessAction(action string) bool {
	switch action {
	case ActionLogin, ActionViewArticle, ActionSystemChange, ActionAccessDenied:
		return true
	}
	return false
}

// AccessLog is one entry of the bounded audit trail.
type AccessLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	UserName  string    `json:"userName"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// Event categories
const (
	EventCategorySports   = "Sports"
	EventCategoryAcademic = "Academic"
	EventCategoryArts     = "Arts"
	EventCategoryClub     = "Club"
	EventCategoryGeneral  = "General"
)

// Event statuses
const (
	EventStatusScheduled   = "scheduled"
	EventStatusRescheduled = "rescheduled"
	EventStatusCancelled   = "cancelled"
)

// EventDateLayout is the calendar date format of SchoolEvent.Date.
const EventDateLayout = "2006-01-02"

// SubEvent is one item of an event's day agenda.
type SubEvent struct {
	ID       string `json:"id"`
	Time     string `json:"time" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Location string `json:"location,omitempty"`
}

// SchoolEvent is an entry of the school calendar.
type SchoolEvent struct {
	ID          string     `json:"id"`
	Title       string     `json:"title" validate:"required"`
	Date        string     `json:"date" validate:"required,datetime=2006-01-02"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Category    string     `json:"category" validate:"oneof=Sports Academic Arts Club General"`
	Status      string     `json:"status,omitempty" validate:"omitempty,oneof=scheduled rescheduled cancelled"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	SubEvents   []SubEvent `json:"subEvents,omitempty" validate:"dive"`
}

// PollOption is one answer of a poll.
type PollOption struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes int64  `json:"votes"`
}

// Poll is the single active reader poll.
type Poll struct {
	ID         string       `json:"id"`
	Question   string       `json:"question"`
	Options    []PollOption `json:"options"`
	TotalVotes int64        `json:"totalVotes"`
}
