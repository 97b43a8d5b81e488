// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport (chi router).
  - Only this package and cmd/api import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/quillhq/quill/internal/blog/comment"
	"github.com/quillhq/quill/internal/blog/post"
	"github.com/quillhq/quill/internal/platform/config"
	"github.com/quillhq/quill/internal/platform/constants"
	"github.com/quillhq/quill/internal/platform/middleware"
	"github.com/quillhq/quill/internal/users/auth"
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
	// Liveness is the /health handler — 200 whenever the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, refresh, and logout.
	Auth *auth.Handler

	// Post handles the blog post catalogue.
	Post *post.Handler

	// Comment handles comment threads nested under posts.
	Comment *comment.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// Identity is route-scoped, never global: read routes run the optional gate
// ([middleware.Identity.Authenticate]) and mutation routes run the mandatory
// gate ([middleware.Identity.RequireAuth]) alone. Mounting the optional gate
// globally would answer a bad credential on a guarded route with its 400
// before the mandatory gate could answer 401, and would resolve the
// principal twice. Each domain router picks exactly one gate per route.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, gate *middleware.Identity, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Mount("/auth", h.Auth.Routes())
	r.Route("/posts", func(posts chi.Router) {
		posts.Mount("/", h.Post.Routes(gate))
		posts.Mount("/{slug}/comments", h.Comment.Routes(gate))
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

// Handler exposes the composed router, primarily for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.router
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
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
