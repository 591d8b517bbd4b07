package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ltcdata/insurance-api/internal/logger"
	"github.com/ltcdata/insurance-api/internal/utils"
)

func (h *Handler) listClaims(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		h.renderError(w, ErrEmptyAuthorizationHeader, http.StatusUnauthorized)
		return
	}

	resp, err := h.services.ClaimsService.List(ctx, principal, r.URL.Query())
	if err != nil {
		log.Err(err).Msg("claims list failed")
		h.renderServiceError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) getClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		h.renderError(w, ErrEmptyAuthorizationHeader, http.StatusUnauthorized)
		return
	}

	rfbID, err := strconv.ParseInt(chi.URLParam(r, "rfbID"), 10, 64)
	if err != nil {
		h.renderError(w, ErrInvalidIdentifier, http.StatusBadRequest)
		return
	}

	row, err := h.services.ClaimsService.Get(ctx, principal, rfbID)
	if err != nil {
		log.Err(err).Int64("rfb_id", rfbID).Msg("claim lookup failed")
		h.renderServiceError(w, err)
		return
	}

	utils.WriteJSON(w, row, http.StatusOK)
}

func (h *Handler) claimsSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		h.renderError(w, ErrEmptyAuthorizationHeader, http.StatusUnauthorized)
		return
	}

	summary, err := h.services.ClaimsService.Summary(ctx, principal)
	if err != nil {
		log.Err(err).Msg("claims summary failed")
		h.renderServiceError(w, err)
		return
	}

	utils.WriteJSON(w, summary, http.StatusOK)
}
