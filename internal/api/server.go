// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dkravets/inkwell/internal/auth"
	"github.com/dkravets/inkwell/internal/blogs"
	"github.com/dkravets/inkwell/internal/comments"
	"github.com/dkravets/inkwell/internal/platform/config"
	"github.com/dkravets/inkwell/internal/platform/constants"
	"github.com/dkravets/inkwell/internal/platform/middleware"
	"github.com/dkravets/inkwell/internal/posts"
	"github.com/dkravets/inkwell/internal/users"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Blogs handles the anonymous blog read surface.
	Blogs *blogs.HTTPHandler

	// Blogger handles the authenticated blogger management surface.
	Blogger *blogs.BloggerHandler

	// BlogsAdmin handles the basic-auth /sa blog surface.
	BlogsAdmin *blogs.AdminHandler

	// Posts handles the post read surface and reactions.
	Posts *posts.HTTPHandler

	// Comments handles the comment surface and reactions.
	Comments *comments.HTTPHandler

	// Users handles the basic-auth /sa account surface.
	Users *users.HTTPHandler

	// Auth handles the token flow, registration and password recovery.
	Auth *auth.HTTPHandler

	// Security handles refresh-cookie-authenticated device sessions.
	Security *auth.SecurityHandler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/blogs", h.Blogs.Routes())
		api.Mount("/posts", h.Posts.Routes())
		api.Mount("/comments", h.Comments.Routes())
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/security/devices", h.Security.Routes())

		// Blogger management: requires an authenticated access token.
		api.Route("/blogger", func(blogger chi.Router) {
			blogger.Use(middleware.RequireAuth)
			blogger.Mount("/blogs", h.Blogger.BlogRoutes())
			blogger.Mount("/users", h.Blogger.UserRoutes())
		})

		// Site administration: guarded by basic auth from config.
		api.Route("/sa", func(admin chi.Router) {
			admin.Use(middleware.BasicAdmin(cfg.AdminLogin, cfg.AdminPassword))
			admin.Mount("/blogs", h.BlogsAdmin.Routes())
			admin.Mount("/users", h.Users.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
