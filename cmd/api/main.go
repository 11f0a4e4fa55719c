// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

// Command api is the entry point for the Inkwell HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire repositories, the command bus and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkravets/inkwell/internal/api"
	"github.com/dkravets/inkwell/internal/auth"
	"github.com/dkravets/inkwell/internal/blogs"
	"github.com/dkravets/inkwell/internal/command"
	"github.com/dkravets/inkwell/internal/comments"
	"github.com/dkravets/inkwell/internal/platform/config"
	"github.com/dkravets/inkwell/internal/platform/constants"
	"github.com/dkravets/inkwell/internal/platform/migration"
	pgstore "github.com/dkravets/inkwell/internal/platform/postgres"
	redisstore "github.com/dkravets/inkwell/internal/platform/redis"
	"github.com/dkravets/inkwell/internal/platform/sec"
	"github.com/dkravets/inkwell/internal/posts"
	"github.com/dkravets/inkwell/internal/users"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "inkwell"))
	slog.SetDefault(log)

	log.Info("[Inkwell] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "inkwell"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Issuer ───────────────────────────────────────────────────
	tokenIssuer := sec.NewTokenIssuer(sec.TokenIssuerConfig{
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.JWTAccessTTL,
		RefreshTTL:    cfg.JWTRefreshTTL,
		Issuer:        constants.AuthIssuer,
	})

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Repositories ───────────────────────────────────────────────────
	userRepository := users.NewPostgresRepository(pool)
	blogRepository := blogs.NewDocstoreRepository(pool)
	postRepository := posts.NewDocstoreRepository(pool)
	commentRepository := comments.NewDocstoreRepository(pool)
	codeStore := auth.NewRedisCodeStore(rdb)

	// ── 9. Command Bus ────────────────────────────────────────────────────
	// The bus is created empty, passed to the handler sets as their
	// dispatcher, and only then populated. This two-phase wiring lets
	// moderation handlers dispatch their own cascades through the bus.
	bus := command.NewBus()

	authService := auth.NewService(userRepository)
	mailSender := auth.NewLogSender(log)

	bus.Blogs = blogs.NewHandlers(blogRepository, userRepository, postRepository, bus)
	bus.Posts = posts.NewHandlers(postRepository, blogRepository)
	bus.Comments = comments.NewHandlers(commentRepository, postRepository, blogRepository)
	bus.Users = users.NewHandlers(userRepository)
	bus.Auth = auth.NewHandlers(authService, userRepository, tokenIssuer, codeStore, mailSender)

	// ── 10. HTTP Handlers ─────────────────────────────────────────────────
	// Cross-domain sub-resources (a blog's posts, a post's comments) are
	// passed as plain handler funcs so the domains stay import-free of
	// each other.
	loginResolver := func(request *http.Request, userID string) (string, error) {
		return userRepository.LoginOf(request.Context(), userID)
	}

	commentHandler := comments.NewHTTPHandler(bus, commentRepository, loginResolver)
	postHandler := posts.NewHTTPHandler(bus, postRepository, loginResolver,
		commentHandler.ListForPost, commentHandler.CreateForPost)
	blogHandler := blogs.NewHTTPHandler(blogRepository, postHandler.ListForBlog)
	bloggerHandler := blogs.NewBloggerHandler(bus, blogRepository, userRepository,
		blogs.PostEndpoints{
			Create: postHandler.CreateForBlog,
			Update: postHandler.UpdateForBlog,
			Delete: postHandler.DeleteForBlog,
		},
		commentHandler.BloggerFeed)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Blogs:      blogHandler,
		Blogger:    bloggerHandler,
		BlogsAdmin: blogs.NewAdminHandler(bus, blogRepository, userRepository),
		Posts:      postHandler,
		Comments:   commentHandler,
		Users:      users.NewHTTPHandler(bus, userRepository),
		Auth:       auth.NewHTTPHandler(bus, userRepository),
		Security:   auth.NewSecurityHandler(bus, authService, tokenIssuer),
	}

	// ── 11. HTTP Server ───────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokenIssuer, handlers)

	// ── 12. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
