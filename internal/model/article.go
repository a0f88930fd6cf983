// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"time"
)

// ArticleStatus is a position in the editorial workflow.
type ArticleStatus string

// Article statuses
const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPending   ArticleStatus = "pending"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusRejected  ArticleStatus = "rejected"
	ArticleStatusArchived  ArticleStatus = "archived"
)

// ErrInvalidTransition is returned when a status change is not allowed
// by the editorial workflow.
var ErrInvalidTransition = errors.New("invalid status transition")

// transitions lists every allowed status change.
var transitions = map[ArticleStatus][]ArticleStatus{
	ArticleStatusDraft:     {ArticleStatusPending},
	ArticleStatusRejected:  {ArticleStatusPending},
	ArticleStatusPending:   {ArticleStatusPublished, ArticleStatusRejected},
	ArticleStatusPublished: {ArticleStatusArchived},
}

// Valid reports whether s is a known status.
func (s ArticleStatus) Valid() bool {
	switch s {
	case ArticleStatusDraft, ArticleStatusPending, ArticleStatusPublished,
		ArticleStatusRejected, ArticleStatusArchived:
		return true
	}
	return false
}

// CanTransition reports whether an article may move from one status to another.
func CanTransition(from, to ArticleStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns ErrInvalidTransition wrapped with both statuses
// when the change is not allowed.
func CheckTransition(from, to ArticleStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// submissionOrder ranks statuses for an author's own listing.
var submissionOrder = map[ArticleStatus]int{
	ArticleStatusDraft:     1,
	ArticleStatusPending:   2,
	ArticleStatusRejected:  3,
	ArticleStatusPublished: 4,
	ArticleStatusArchived:  5,
}

// SubmissionRank returns the sort rank of s in "my submissions" views.
func (s ArticleStatus) SubmissionRank() int {
	if r, ok := submissionOrder[s]; ok {
		return r
	}
	return len(submissionOrder) + 1
}

// Reaction keys
const (
	ReactionLike       = "like"
	ReactionLove       = "love"
	ReactionInsightful = "insightful"
	ReactionSad        = "sad"
)

// ArticleReactions holds the fixed set of reaction counters.
type ArticleReactions struct {
	Like       int64 `json:"like"`
	Love       int64 `json:"love"`
	Insightful int64 `json:"insightful"`
	Sad        int64 `json:"sad"`
}

// IsReactionKey reports whether key names one of the reaction counters.
func IsReactionKey(key string) bool {
	switch key {
	case ReactionLike, ReactionLove, ReactionInsightful, ReactionSad:
		return true
	}
	return false
}

// Increment bumps the counter named by key. It returns false for unknown keys.
func (r *ArticleReactions) Increment(key string) bool {
	switch key {
	case ReactionLike:
		r.Like++
	case ReactionLove:
		r.Love++
	case ReactionInsightful:
		r.Insightful++
	case ReactionSad:
		r.Sad++
	default:
		return false
	}
	return true
}

// Article is a story moving through the editorial workflow.
type Article struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Slug         string           `json:"slug"`
	Excerpt      string           `json:"excerpt"`
	Content      string           `json:"content"`
	AuthorID     string           `json:"authorId"`
	AuthorName   string           `json:"authorName"`
	CategorySlug string           `json:"categorySlug"`
	ImageURL     string           `json:"imageUrl"`
	VideoURL     string           `json:"videoUrl,omitempty"`
	PublishedAt  time.Time        `json:"publishedAt"`
	Status       ArticleStatus    `json:"status"`
	Views        int64            `json:"views"`
	Feedback     string           `json:"feedback,omitempty"`
	Reactions    ArticleReactions `json:"reactions"`
	IsMemberOnly bool             `json:"isMemberOnly"`
	IsFeatured   bool             `json:"isFeatured"`
}

// IsPublished returns true if the article is publicly visible.
func (a *Article) IsPublished() bool {
	return a.Status == ArticleStatusPublished
}

// IsEditableByAuthor returns true if the author may still change or delete the article.
func (a *Article) IsEditableByAuthor() bool {
	return a.Status == ArticleStatusDraft || a.Status == ArticleStatusRejected
}
