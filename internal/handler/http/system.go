package http

import (
	"net/http"
	"time"

	"github.com/ltcdata/insurance-api/internal/logger"
	"github.com/ltcdata/insurance-api/internal/utils"
	"github.com/ltcdata/insurance-api/models"
)

// root reports service metadata.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{
		"service": "insurance-warehouse-api",
		"version": h.version,
		"status":  "running",
	}, http.StatusOK)
}

// health is the liveness probe: the process is up.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	}, http.StatusOK)
}

// ready is the readiness probe: the process is up and the database answers.
func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	resp := models.ReadinessResponse{
		Status:    "ready",
		Database:  "connected",
		Timestamp: time.Now().UTC(),
	}
	status := http.StatusOK

	if h.db == nil {
		resp.Status = "not ready"
		resp.Database = "disconnected"
		status = http.StatusServiceUnavailable
	} else if err := h.db.Health(r.Context()); err != nil {
		log.Err(err).Msg("readiness check failed")
		resp.Status = "not ready"
		resp.Database = "disconnected"
		status = http.StatusServiceUnavailable
	}

	utils.WriteJSON(w, resp, status)
}
