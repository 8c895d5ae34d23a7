// Package http provides the HTTP routing, handlers and static file serving
// of the subscriber panel backend.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/atinyakov/radclients/internal/metrics"
	"github.com/atinyakov/radclients/internal/middleware"
)

// NewRouter constructs the HTTP handler of the panel backend.
//
// Routes:
//
//	GET    /clients                    → clientHandler.List
//	GET    /clients/{id_number}        → clientHandler.Get
//	POST   /clients                    → clientHandler.Create
//	PUT    /clients/{id_number}        → clientHandler.Update
//	PUT    /clients/{id_number}/status → clientHandler.UpdateStatus
//	DELETE /clients/{id_number}        → clientHandler.Delete
//	GET    /zones                      → zoneHandler.List
//	POST   /auth/login                 → authHandler.Login
//	GET    /metrics                    → Prometheus exposition
//	GET    /*                          → static frontend with index.html fallback
//
// Middleware chain (applied in order):
//  1. Recoverer          turns panics into 500s
//  2. RequestID          assigns X-Request-ID
//  3. WithRequestLogging logs every request
//  4. WithMetrics        counts requests per route pattern
//  5. CORS               open to any origin
func NewRouter(
	clientHandler *ClientHandler,
	zoneHandler *ZoneHandler,
	authHandler *AuthHandler,
	static http.Handler,
	reg *metrics.Registry,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.WithRequestLogging(logger))
	if reg != nil {
		r.Use(middleware.WithMetrics(reg))
	}
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut,
			http.MethodPatch, http.MethodPost, http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}).Handler)

	r.Get("/clients", clientHandler.List)
	r.Post("/clients", clientHandler.Create)
	r.Get("/clients/{id_number}", clientHandler.Get)
	r.Put("/clients/{id_number}", clientHandler.Update)
	r.Delete("/clients/{id_number}", clientHandler.Delete)
	r.Put("/clients/{id_number}/status", clientHandler.UpdateStatus)
	r.Get("/zones", zoneHandler.List)
	r.Post("/auth/login", authHandler.Login)

	if reg != nil {
		r.Handle("/metrics", reg.Handler())
	}
	if static != nil {
		r.Get("/*", static.ServeHTTP)
	}

	return r
}
