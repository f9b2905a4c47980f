// Package httpapi exposes the blog backend over HTTP: auth session
// endpoints, post CRUD, and operational routes. It owns credential
// transport (the refresh cookie) and the mapping from domain errors to
// status codes; all business rules live in internal/auth and
// internal/posts.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inkwell/internal/auth"
	"inkwell/internal/logging"
	"inkwell/internal/posts"
)

// Server binds the domain services to routes.
type Server struct {
	engine   *auth.Engine
	users    auth.UserStore
	posts    *posts.Service
	logger   logging.Logger
	metrics  *apiMetrics
	registry *prometheus.Registry
}

// NewServer wires the handler set. The user store is the same collaborator
// the engine uses; the HTTP layer reads from it only for /users/me.
func NewServer(engine *auth.Engine, users auth.UserStore, postSvc *posts.Service, logger logging.Logger) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	return &Server{
		engine:   engine,
		users:    users,
		posts:    postSvc,
		logger:   logger,
		metrics:  newAPIMetrics(registry),
		registry: registry,
	}
}

// Handler builds the chi route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.With(s.requireAccess).Post("/logout", s.handleLogout)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(s.requireAccess).Get("/me", s.handleMe)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", s.handleListPosts)
			r.Get("/{id}", s.handleGetPost)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAccess)
				r.Post("/", s.handleCreatePost)
				r.Patch("/{id}", s.handleUpdatePost)
				r.Delete("/{id}", s.handleDeletePost)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
