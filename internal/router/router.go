// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for
// EricWriter. Operational endpoints sit outside the session and CSRF
// stack; pages and the JSON API sit inside it.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"ericwriter/internal/handlers"
	"ericwriter/internal/middleware"
	"ericwriter/internal/session"
)

// Options carries everything the router wires together.
type Options struct {
	Sessions  *session.Store
	Auth      *handlers.Auth
	Documents *handlers.Documents
	Settings  *handlers.Settings
	Pages     *handlers.Pages

	// Metrics is optional; nil disables instrumentation and /metrics.
	Metrics *middleware.Metrics

	// AuthLimiter guards POST /login and POST /register. Optional.
	AuthLimiter *middleware.RateLimiter

	// Static is served under /static/. Optional.
	Static fs.FS

	AllowedOrigins []string
	SecureCookies  bool
}

// New creates and returns the configured Chi router.
func New(opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Instrument)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", middleware.CSRFHeaderName, middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Operational endpoints: no session, no CSRF.
	r.Get("/health", healthHandler)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	if opts.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(opts.Static)))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadSession(opts.Sessions))
		r.Use(middleware.CSRF(opts.SecureCookies))

		// Public pages and credential endpoints.
		r.Get("/", opts.Pages.Index)
		r.Get("/login", opts.Auth.LoginPage)
		r.Get("/register", opts.Auth.RegisterPage)
		r.Group(func(r chi.Router) {
			if opts.AuthLimiter != nil {
				r.Use(opts.AuthLimiter.Middleware)
			}
			r.Post("/login", opts.Auth.Login)
			r.Post("/register", opts.Auth.Register)
		})

		// Pages that need a signed-in user redirect to the login form.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuthPage)
			r.Get("/settings", opts.Settings.Page)
		})

		// Protected JSON endpoints answer 401 when anonymous.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Post("/logout", opts.Auth.Logout)
			r.Post("/settings", opts.Settings.Submit)
			r.Get("/api/current_theme", opts.Settings.CurrentTheme)

			r.Route("/api/documents", func(r chi.Router) {
				r.Get("/", opts.Documents.List)
				r.Post("/", opts.Documents.Create)
				r.Get("/{id}", opts.Documents.Get)
				r.Put("/{id}", opts.Documents.Update)
				r.Delete("/{id}", opts.Documents.Delete)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
