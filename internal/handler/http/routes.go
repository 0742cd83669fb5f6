// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withMetrics, h.withRequestLog)
	if len(h.cfg.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.cfg.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Content-Encoding", traceIDHeader},
			ExposedHeaders:   []string{"Authorization", traceIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	router.Use(withGZip)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Get("/api/user/verify", h.verify)

		r.Get("/api/version/", h.getServerVersion)
		r.Get("/api/version/build", h.getBuildInfo)
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/notes", func(r chi.Router) {
			r.Post("/", h.createNote)
			r.Get("/", h.listNotes)
			r.Delete("/cache", h.invalidateNotesCache)

			r.Patch("/{noteID}", h.updateNote)
			r.Delete("/{noteID}", h.deleteNote)

			r.Get("/{noteID}/collaborators", h.listCollaborators)
			r.Post("/{noteID}/collaborators", h.grantCollaborators)
			r.Delete("/{noteID}/collaborators", h.revokeCollaborators)
		})

		r.Route("/api/labels", func(r chi.Router) {
			r.Post("/", h.createLabel)
			r.Get("/", h.listLabels)
			r.Patch("/{labelID}", h.updateLabel)
			r.Delete("/{labelID}", h.deleteLabel)
		})

		r.Get("/api/stats/requests", h.listRequestLogs)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
