package http

import (
	"errors"
	"net/http"

	"github.com/ltcdata/insurance-api/internal/query"
	"github.com/ltcdata/insurance-api/internal/service"
	"github.com/ltcdata/insurance-api/internal/store"
	"github.com/ltcdata/insurance-api/internal/utils"
	"github.com/ltcdata/insurance-api/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrUserInactive:            http.StatusForbidden,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	query.ErrFieldNotAllowed:   http.StatusBadRequest,
	query.ErrInvalidFieldValue: http.StatusBadRequest,
	query.ErrInvalidRange:      http.StatusBadRequest,
	query.ErrInvalidPagination: http.StatusBadRequest,

	store.ErrNoUserWasFound: http.StatusUnauthorized,
	store.ErrRecordNotFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

var validationKindMap = map[error]string{
	query.ErrFieldNotAllowed:   "field_not_allowed",
	query.ErrInvalidFieldValue: "invalid_field_value",
	query.ErrInvalidRange:      "invalid_range",
	query.ErrInvalidPagination: "invalid_pagination",
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// renderError writes a structured error body with an explicit status code.
func (h *Handler) renderError(w http.ResponseWriter, err error, status int) {
	utils.WriteJSON(w, models.ErrorResponse{Error: err.Error()}, status)
}

// renderServiceError maps a service or storage failure to its HTTP status
// and renders the structured error body. Validation failures carry the
// offending parameter so clients can pinpoint what to fix; internal failures
// deliberately expose no detail.
func (h *Handler) renderServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	if status == http.StatusInternalServerError {
		utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(status)}, status)
		return
	}

	resp := models.ErrorResponse{Error: err.Error()}

	var validationErr *query.ValidationError
	if errors.As(err, &validationErr) {
		resp.Kind = validationKindMap[validationErr.Kind]
		resp.Field = validationErr.Field
		resp.Value = validationErr.Value
	}

	utils.WriteJSON(w, resp, status)
}
