// Package web serves the article index, rendered documents, and static files.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a chi router with the preview routes mounted.
// reloadHandler, if non-nil, is mounted at GET /events for live reload.
func NewRouter(h *Handler, reloadHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints.
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if reloadHandler != nil {
		r.Get("/events", reloadHandler.ServeHTTP)
	}

	// Index, then everything else: rendered documents or static fallback.
	r.Get("/", h.Index)
	r.Get("/*", h.Document)

	return r
}
