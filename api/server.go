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
  4. CORS:       Cross-origin requests for dashboards

ROUTE GROUPS:
  /api/workers/*    Worker registration and per-worker reads
  /api/missions/*   Assignment, punching, cancellation
  /api/timelogs/*   Earnings corrections
  /api/payments     Disbursement recording
  /api/payrolls/*   Statement generation and lookup

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

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
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Worker routes
		r.Route("/workers", func(r chi.Router) {
			r.Get("/", h.ListWorkers)
			r.Post("/", h.CreateWorker)
			r.Get("/{id}", h.GetWorker)
			r.Get("/{id}/missions", h.GetWorkerMissions)
			r.Get("/{id}/timelogs", h.GetWorkerTimeLogs)
			r.Get("/{id}/payments", h.GetWorkerPayments)
			r.Get("/{id}/payrolls", h.GetWorkerPayrolls)
		})

		// Mission routes
		r.Route("/missions", func(r chi.Router) {
			r.Post("/", h.AssignMission)
			r.Get("/{id}", h.GetMission)
			r.Post("/{id}/punch", h.Punch)
			r.Post("/{id}/cancel", h.CancelMission)
		})

		// Time log routes
		r.Route("/timelogs", func(r chi.Router) {
			r.Post("/{id}/earnings", h.CorrectEarnings)
		})

		// Payment and payroll routes
		r.Post("/payments", h.RecordPayment)
		r.Route("/payrolls", func(r chi.Router) {
			r.Post("/", h.GeneratePayroll)
			r.Get("/{id}", h.GetPayroll)
		})

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}
