// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/newsroom/internal/middleware"
	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/service"
)

// VoteRequest is the body of POST /poll/vote.
type VoteRequest struct {
	PollID   string `json:"pollId"`
	OptionID string `json:"optionId"`
}

// SubscribeRequest is the body of POST /newsletter.
type SubscribeRequest struct {
	Email string `json:"email"`
}

// SubscribeResponse reports whether the address was new.
type SubscribeResponse struct {
	Email string `json:"email"`
	New   bool   `json:"new"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the assistant reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// UnreadResponse carries the unread notification count.
type UnreadResponse struct {
	Unread int `json:"unread"`
}

// ListComments handles GET /comments?articleId=.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	WriteList(w, h.svc.Engagement.ListComments(r.URL.Query().Get("articleId")))
}

// AddComment handles POST /comments.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var in service.CommentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.svc.Engagement.AddComment(r.Context(), middleware.GetUser(r), in)
	if err != nil {
		h.writeServiceError(w, r, "addComment", err)
		return
	}
	WriteCreated(w, c)
}

// DeleteComment handles DELETE /comments/{id}.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Engagement.DeleteComment(r.Context(), middleware.GetUser(r), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, "deleteComment", err)
		return
	}
	WriteNoContent(w)
}

// ActivePoll handles GET /poll.
func (h *Handler) ActivePoll(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, h.svc.Engagement.ActivePoll(), nil)
}

// Vote handles POST /poll/vote.
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	var req VoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.svc.Engagement.Vote(r.Context(), req.PollID, req.OptionID)
	if err != nil {
		h.writeServiceError(w, r, "vote", err)
		return
	}
	WriteSuccess(w, p, nil)
}

// ListEvents handles GET /events.
func (h *Handler) ListEvents(w http.ResponseWriter, _ *http.Request) {
	WriteList(w, h.svc.Engagement.ListEvents())
}

// CreateEvent handles POST /events.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var ev model.SchoolEvent
	if !decodeJSON(w, r, &ev) {
		return
	}
	created, err := h.svc.Engagement.CreateEvent(r.Context(), middleware.GetUser(r), ev)
	if err != nil {
		h.writeServiceError(w, r, "createEvent", err)
		return
	}
	WriteCreated(w, created)
}

// UpdateEvent handles PUT /events/{id}.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var ev model.SchoolEvent
	if !decodeJSON(w, r, &ev) {
		return
	}
	updated, err := h.svc.Engagement.UpdateEvent(r.Context(), middleware.GetUser(r), chi.URLParam(r, "id"), ev)
	if err != nil {
		h.writeServiceError(w, r, "updateEvent", err)
		return
	}
	WriteSuccess(w, updated, nil)
}

// DeleteEvent handles DELETE /events/{id}.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Engagement.DeleteEvent(r.Context(), middleware.GetUser(r), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, "deleteEvent", err)
		return
	}
	WriteNoContent(w)
}

// SendContactMessage handles POST /contact.
func (h *Handler) SendContactMessage(w http.ResponseWriter, r *http.Request) {
	var in service.ContactInput
	if !decodeJSON(w, r, &in) {
		return
	}
	m, err := h.svc.Engagement.SendContactMessage(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, "sendContactMessage", err)
		return
	}
	WriteCreated(w, m)
}

// ListMessages handles GET /contact/messages.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.Engagement.ListMessages(middleware.GetUser(r))
	if err != nil {
		h.writeServiceError(w, r, "listMessages", err)
		return
	}
	WriteList(w, msgs)
}

// MarkMessageRead handles POST /contact/messages/{id}/read.
func (h *Handler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Engagement.MarkMessageRead(r.Context(), middleware.GetUser(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, "markMessageRead", err)
		return
	}
	WriteSuccess(w, m, nil)
}

// Subscribe handles POST /newsletter. A new address answers 201, a known
// one 200.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	added, err := h.svc.Engagement.Subscribe(r.Context(), req.Email)
	if err != nil {
		h.writeServiceError(w, r, "subscribe", err)
		return
	}
	resp := SubscribeResponse{Email: req.Email, New: added}
	if added {
		WriteCreated(w, resp)
		return
	}
	WriteSuccess(w, resp, nil)
}

// ListNotifications handles GET /notifications.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.Notifications.ForUser(middleware.GetUser(r))
	if err != nil {
		h.writeServiceError(w, r, "listNotifications", err)
		return
	}
	WriteList(w, notes)
}

// UnreadNotifications handles GET /notifications/unread.
func (h *Handler) UnreadNotifications(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, UnreadResponse{Unread: h.svc.Notifications.UnreadCount(middleware.GetUser(r))}, nil)
}

// MarkNotificationRead handles POST /notifications/{id}/read.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Notifications.MarkRead(r.Context(), middleware.GetUser(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, "markNotificationRead", err)
		return
	}
	WriteSuccess(w, n, nil)
}

// Catalog handles GET /catalog.
func (h *Handler) Catalog(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, h.svc.Engagement.Catalog(), nil)
}

// Chat handles POST /chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	reply, err := h.svc.Chat.Reply(r.Context(), req.Message)
	if err != nil {
		h.writeServiceError(w, r, "chat", err)
		return
	}
	WriteSuccess(w, ChatResponse{Reply: reply}, nil)
}
