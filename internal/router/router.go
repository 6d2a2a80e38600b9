// Package router sets up all HTTP routes and middleware chains for the
// newsfront server. Read-only page routes live under /api; the revalidation
// webhook is rate limited separately.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"newsfront/internal/handlers"
	"newsfront/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(public *handlers.Public, revalidate http.Handler, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.NotFound(jsonStatus(http.StatusNotFound, "not found"))
	r.MethodNotAllowed(jsonStatus(http.StatusMethodNotAllowed, "method not allowed"))

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/home", public.Home)
		r.Get("/posts/{slug}", public.Post)
		r.Get("/categories/{slug}", public.Category)
		r.Get("/authors/{slug}", public.Author)
		r.Get("/tags/{id}", public.Tag)
		r.Get("/search", public.Search)
		r.Get("/videos", public.Videos)

		// Webhook: called by the CMS after publishing.
		r.With(limiter.Middleware).Post("/revalidate", revalidate.ServeHTTP)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func jsonStatus(status int, msg string) http.HandlerFunc {
	body := []byte(`{"error":"` + msg + `"}`)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(body)
	}
}
