package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5))

	// probes and service metadata, no authorization
	router.Get("/", h.root)
	router.Get("/health", h.health)
	router.Get("/ready", h.ready)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Route("/policies", func(r chi.Router) {
				r.Get("/", h.listPolicies)
				r.Get("/analytics/summary", h.policySummary)
				r.Get("/{policyID}", h.getPolicy)
			})

			r.Route("/claims", func(r chi.Router) {
				r.Get("/", h.listClaims)
				r.Get("/analytics/summary", h.claimsSummary)
				r.Get("/{rfbID}", h.getClaim)
			})
		})
	})

	return router
}
