/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/domains/*   Boards: listing, refresh, views, CSV export
  /api/sessions/*  Per-session drill-down state

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Board routes
		r.Route("/domains", func(r chi.Router) {
			r.Get("/", h.ListDomains)
			r.Route("/{domain}", func(r chi.Router) {
				r.Post("/refresh", h.RefreshDomain)
				r.Get("/history", h.DomainHistory)
				r.Get("/kpis", h.GetKPIs)
				r.Get("/regions", h.GetRegions)
				r.Get("/records", h.GetRecords)
				r.Get("/records.csv", h.GetRecordsCSV)
				r.Get("/analytics", h.GetAnalytics)
			})
		})

		// Session routes
		r.Route("/sessions", func(r chi.Router) {
			r.Route("/{sid}", func(r chi.Router) {
				r.Get("/", h.GetSession)
				r.Post("/select", h.Select)
				r.Post("/reset", h.ResetSelection)
			})
		})
	})

	return r
}
