package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ltcdata/insurance-api/internal/logger"
	"github.com/ltcdata/insurance-api/internal/utils"
)

func (h *Handler) listPolicies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		h.renderError(w, ErrEmptyAuthorizationHeader, http.StatusUnauthorized)
		return
	}

	resp, err := h.services.PolicyService.List(ctx, principal, r.URL.Query())
	if err != nil {
		log.Err(err).Msg("policy list failed")
		h.renderServiceError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) getPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		h.renderError(w, ErrEmptyAuthorizationHeader, http.StatusUnauthorized)
		return
	}

	policyID, err := strconv.ParseInt(chi.URLParam(r, "policyID"), 10, 64)
	if err != nil {
		h.renderError(w, ErrInvalidIdentifier, http.StatusBadRequest)
		return
	}

	row, err := h.services.PolicyService.Get(ctx, principal, policyID)
	if err != nil {
		log.Err(err).Int64("policy_id", policyID).Msg("policy lookup failed")
		h.renderServiceError(w, err)
		return
	}

	utils.WriteJSON(w, row, http.StatusOK)
}

func (h *Handler) policySummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		h.renderError(w, ErrEmptyAuthorizationHeader, http.StatusUnauthorized)
		return
	}

	summary, err := h.services.PolicyService.Summary(ctx, principal)
	if err != nil {
		log.Err(err).Msg("policy summary failed")
		h.renderServiceError(w, err)
		return
	}

	utils.WriteJSON(w, summary, http.StatusOK)
}
