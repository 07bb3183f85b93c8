// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// autoblog API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"autoblog/internal/handlers"
	"autoblog/internal/middleware"
)

// Options configures the middleware around the API routes.
type Options struct {
	// APITokenHash is the bcrypt hash of the shared API token. Empty
	// disables the check.
	APITokenHash string

	// GenerateLimiter throttles article generation per client. Nil means
	// unlimited.
	GenerateLimiter *middleware.RateLimiter

	// TrustProxy takes the client address from X-Forwarded-For and
	// X-Real-IP. Only enable it behind a proxy that overwrites them.
	TrustProxy bool
}

// New creates and returns the configured Chi router.
func New(api *handlers.API, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":"Not found."}`)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, `{"error":"Method not allowed."}`)
	})

	// Health check, no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAPIToken(opts.APITokenHash))

		r.Get("/brands", api.Brand)
		r.Get("/styles", api.Styles)
		r.Post("/widgets/compile", api.CompileWidget)
		r.Delete("/previews", api.ClearPreviews)

		r.Get("/providers", api.ListProviders)
		r.Put("/providers", api.SetProvider)

		// Widget editor workspace, keyed by cookie.
		r.Route("/workspace", func(r chi.Router) {
			r.Get("/", api.GetWorkspace)
			r.Delete("/", api.DeleteWorkspace)
			r.Put("/params", api.UpdateParams)
			r.Put("/layout", api.UpdateLayout)

			r.Post("/products", api.AddProduct)
			r.Patch("/products/{id}", api.UpdateProduct)
			r.Delete("/products/{id}", api.RemoveProduct)
			r.Post("/products/{id}/autofill", api.AutofillProduct)
			r.Post("/products/{id}/preview", api.PreviewProduct)

			r.Post("/widget", api.SaveWidget)
			r.Delete("/widget", api.ClearWidget)
		})

		// Article generation.
		r.Group(func(r chi.Router) {
			if opts.GenerateLimiter != nil {
				r.Use(opts.GenerateLimiter.Middleware)
			}
			r.Post("/articles", api.GenerateArticle)
		})

		// Blogger publishing.
		r.Get("/blogger/blogs", api.ListBlogs)
		r.Post("/blogger/blogs/{blogID}/posts", api.PublishPost)
		r.Get("/publications", api.ListPublications)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, `{"status":"ok"}`)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
