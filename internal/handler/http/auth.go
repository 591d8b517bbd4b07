package http

import (
	"encoding/json"
	"net/http"

	"github.com/ltcdata/insurance-api/internal/logger"
	"github.com/ltcdata/insurance-api/internal/utils"
	"github.com/ltcdata/insurance-api/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	tokenResponse, err := h.services.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("login failed")
		h.renderServiceError(w, err)
		return
	}

	log.Debug().Int64("id", tokenResponse.UserID).Str("username", tokenResponse.Username).Msg("user successfully logged in")

	utils.WriteJSON(w, tokenResponse, http.StatusOK)
}
