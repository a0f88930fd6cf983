// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/newsroom/internal/auth"
	"github.com/olegiv/newsroom/internal/config"
	"github.com/olegiv/newsroom/internal/handler/api"
	"github.com/olegiv/newsroom/internal/logging"
	"github.com/olegiv/newsroom/internal/middleware"
	"github.com/olegiv/newsroom/internal/repository"
	"github.com/olegiv/newsroom/internal/scheduler"
	"github.com/olegiv/newsroom/internal/service"
	"github.com/olegiv/newsroom/internal/session"
	"github.com/olegiv/newsroom/internal/store"
	"github.com/olegiv/newsroom/internal/version"
	"github.com/olegiv/newsroom/internal/webhook"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

const shutdownTimeout = 30 * time.Second

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Newsroom - student publication platform\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSROOM_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSROOM_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSROOM_STORE_BACKEND    memory|sqlite|mysql|postgres|redis (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSROOM_DB_PATH          SQLite database path (default: ./data/newsroom.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSROOM_DB_DSN           MySQL or Postgres connection string\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSROOM_REDIS_URL        Redis URL for the redis backend\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSROOM_SESSION_SECRET   CSRF key (min 32 bytes, required with NEWSROOM_CSRF_ENABLED)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSROOM_WEBHOOK_URLS     Comma separated webhook targets (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSROOM_OPENAI_API_KEY   Enables the OpenAI chat assistant (optional)\n")
	}

	flag.Parse()

	info := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.SlogLevel(), cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := store.Open(cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	s := store.New(backend, logger)
	defer func() {
		if err := s.Close(); err != nil {
			logger.Error("error closing store", "error", err)
		}
	}()
	logger.Info("store opened", "backend", cfg.StoreBackend)

	repos := repository.New(ctx, s, repository.Options{AccessLogCap: cfg.AccessLogCap})

	var events service.Publisher
	if len(cfg.WebhookURLs) > 0 {
		targets := make([]webhook.Target, 0, len(cfg.WebhookURLs))
		for _, u := range cfg.WebhookURLs {
			targets = append(targets, webhook.Target{URL: u, Secret: cfg.WebhookSecret})
		}
		whCfg := webhook.Config{Targets: targets}
		if !cfg.IsDevelopment() {
			if err := webhook.ValidateTargets(targets); err != nil {
				return err
			}
			whCfg.Client = webhook.SafeClient()
		}
		dispatcher := webhook.NewDispatcher(logger, whCfg)
		debouncer := webhook.NewDebouncer(dispatcher, webhook.DefaultDebounceConfig())
		dispatcher.Start(ctx)
		defer dispatcher.Stop()
		defer debouncer.Stop()
		events = webhook.NewRouter(dispatcher, debouncer, webhook.EventArticleUpdated)
		logger.Info("webhooks enabled", "targets", len(targets))
	}

	var responder service.Responder
	if cfg.ChatEnabled() {
		responder = service.NewOpenAIResponder(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		logger.Info("chat assistant enabled", "model", cfg.OpenAIModel)
	}

	svc := service.New(repos, service.Options{
		EditorIDs: cfg.EditorIDs,
		Events:    events,
		Responder: responder,
		Logger:    logger,
	})

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)

	h := api.NewHandler(api.Options{
		Services: svc,
		Users:    auth.NewDirectory(repos.Users, logger),
		Sessions: session.New(backend, cfg.IsDevelopment()),
		Login:    loginProtection,
		Health:   api.NewHealthChecker(s, info.Short()),
		Logger:   logger,
	})

	routerCfg := api.RouterConfig{
		IsDevelopment: cfg.IsDevelopment(),
		RateLimiter:   limiter,
	}
	if cfg.CSRFEnabled {
		routerCfg.CSRFKey = []byte(cfg.SessionSecret)
	}

	sched := scheduler.New(logger)
	jobs := []scheduler.Job{
		scheduler.PruneNotificationsJob(svc.Notifications, cfg.NotificationRetention, logger),
		scheduler.StoreHealthJob(s),
		{
			Name:        "prune-limiters",
			Description: "Forget per-IP limiters and expired login attempts",
			Schedule:    "@every 10m",
			Run: func(context.Context) error {
				limiter.Prune()
				loginProtection.Prune()
				return nil
			},
		},
	}
	for _, job := range jobs {
		if err := sched.Add(job); err != nil {
			return fmt.Errorf("registering job: %w", err)
		}
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           h.Routes(routerCfg),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.Short())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		sched.Start(gctx)
		<-gctx.Done()
		sched.Stop()

		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
