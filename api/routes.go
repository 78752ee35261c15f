package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// setupRoutes wires the public site endpoints, the authenticated admin API and
// the dashboard route guard.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, startupTime time.Time) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", healthHandler(startupTime))

		// Public read endpoints for the marketing pages
		r.Get("/projects", handlers.projectHandler.listProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Get("/image-url/{storageID}", handlers.imageHandler.resolveImageURL())
		r.Get("/images/{storageID}", handlers.imageHandler.proxyImage())

		// Auth endpoints
		r.Post("/auth/login", handlers.authHandler.login())
		r.Post("/auth/logout", handlers.authHandler.logout())
		r.Post("/auth/bootstrap", handlers.authHandler.bootstrap())

		// Admin-only operations
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.requireSession)

			r.Get("/auth/me", handlers.authHandler.me())

			r.Post("/project", handlers.projectHandler.createProject())
			r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

			r.Post("/image/upload-url", handlers.imageHandler.requestUploadSlot())
			r.Post("/image/store", handlers.imageHandler.storeImage())
		})
	})

	// Dashboard UI shell with the login/dashboard redirect rules
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.With(authMiddleware.redirectIfAuthenticated).
			Get("/admin", handlers.uiHandler.serveShell())
		r.With(authMiddleware.redirectIfAnonymous).
			Get("/dashboard", handlers.uiHandler.serveShell())
		r.With(authMiddleware.redirectIfAnonymous).
			Get("/dashboard/*", handlers.uiHandler.serveShell())
	})
}

// healthHandler reports liveness and uptime since process start.
func healthHandler(startupTime time.Time) http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "health").Logger())
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, map[string]any{
			"status": "ok",
			"uptime": time.Since(startupTime).String(),
		})
	}
}
