// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/newsroom/internal/metrics"
	"github.com/olegiv/newsroom/internal/middleware"
	"github.com/olegiv/newsroom/internal/model"
)

// Prefix is the mount point of the versioned API.
const Prefix = "/api/v1"

// RouterConfig configures the HTTP stack around the API.
type RouterConfig struct {
	IsDevelopment bool

	// RateLimiter limits requests per client. Nil disables rate limiting.
	RateLimiter *middleware.RateLimiter

	// CSRFKey enables CSRF protection when set.
	CSRFKey []byte

	// RequestTimeout bounds every API request. Zero selects 30 seconds.
	RequestTimeout time.Duration
}

// maintenanceExempt are the path prefixes served during maintenance.
var maintenanceExempt = []string{
	Prefix + "/auth/",
	Prefix + "/system/config",
	"/health",
	"/metrics",
}

// Routes builds the router serving the API, health checks and metrics.
func (h *Handler) Routes(cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.RequestMetrics)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment)))
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Middleware())
	}
	r.Use(h.sm.LoadAndSave)
	r.Use(middleware.LoadUser(h.sm, h.users))

	r.Get("/health", h.Health)
	r.Get("/health/live", h.Liveness)
	r.Get("/health/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route(Prefix, func(r chi.Router) {
		r.Use(middleware.Maintenance(h.svc.Config, maintenanceExempt...))
		r.Use(middleware.Timeout(cfg.RequestTimeout))
		if len(cfg.CSRFKey) > 0 {
			r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(cfg.CSRFKey, cfg.IsDevelopment)))
		}

		r.Route("/auth", func(r chi.Router) {
			r.With(h.guard.Middleware()).Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
			r.Put("/me", h.UpdateMe)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireRole((*model.User).IsAdmin, h.recordDenied("manageUsers")))
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Put("/{id}", h.UpdateUser)
			r.Delete("/{id}", h.RemoveUser)
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", h.ListArticles)
			r.Post("/", h.CreateArticle)
			r.Get("/all", h.ListAllArticles)
			r.Get("/featured", h.FeaturedArticle)
			r.Get("/mine", h.MySubmissions)
			r.Get("/review-queue", h.ReviewQueue)
			r.Post("/bookmarks", h.Bookmarks)
			r.Get("/slug/{slug}", h.GetArticleBySlug)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", h.UpdateArticle)
				r.Delete("/", h.DeleteArticle)
				r.Get("/related", h.RelatedArticles)
				r.Post("/status", h.SetArticleStatus)
				r.Post("/feature", h.ToggleFeature)
				r.Post("/views", h.IncrementViews)
				r.Post("/reactions", h.React)
			})
		})

		r.Route("/pages", func(r chi.Router) {
			r.Get("/", h.ListPages)
			r.Post("/", h.CreatePage)
			r.Get("/navigation", h.Navigation)
			r.Get("/slug/{slug}", h.GetPage)
			r.Put("/{id}", h.UpdatePage)
			r.Delete("/{id}", h.DeletePage)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", h.ListReports)
			r.Post("/", h.SubmitReport)
			r.Post("/{id}/dismiss", h.DismissReport)
			r.Post("/{id}/notify", h.NotifyAuthor)
		})

		r.Get("/system/config", h.GetSystemConfig)
		r.Put("/system/config", h.UpdateSystemConfig)
		r.Get("/search", h.Search)
		r.Get("/search/catalog", h.SearchCatalog)
		r.Get("/access-logs", h.AccessLogs)

		r.Route("/comments", func(r chi.Router) {
			r.Get("/", h.ListComments)
			r.Post("/", h.AddComment)
			r.Delete("/{id}", h.DeleteComment)
		})

		r.Get("/poll", h.ActivePoll)
		r.Post("/poll/vote", h.Vote)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.ListEvents)
			r.Post("/", h.CreateEvent)
			r.Put("/{id}", h.UpdateEvent)
			r.Delete("/{id}", h.DeleteEvent)
		})

		r.Post("/contact", h.SendContactMessage)
		r.Get("/contact/messages", h.ListMessages)
		r.Post("/contact/messages/{id}/read", h.MarkMessageRead)
		r.Post("/newsletter", h.Subscribe)

		r.Route("/notifications", func(r chi.Router) {
			r.Use(middleware.RequireLogin)
			r.Get("/", h.ListNotifications)
			r.Get("/unread", h.UnreadNotifications)
			r.Post("/{id}/read", h.MarkNotificationRead)
		})

		r.Get("/catalog", h.Catalog)
		r.Post("/chat", h.Chat)
	})

	return r
}

// recordDenied returns a hook that writes refused requests to the access log.
func (h *Handler) recordDenied(operation string) func(*http.Request, *model.User) {
	return func(r *http.Request, user *model.User) {
		h.svc.Audit.RecordDenied(r.Context(), user, operation)
	}
}
