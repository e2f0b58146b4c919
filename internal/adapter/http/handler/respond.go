package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TimBERNIC/tedvin-backend/internal/domain"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError resolves any failure to the {message} envelope. Unexpected
// errors surface their message with a 500.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFromError(err), messageResponse{Message: err.Error()})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingParameters),
		errors.Is(err, domain.ErrTitleTooLong),
		errors.Is(err, domain.ErrDescriptionTooLong),
		errors.Is(err, domain.ErrPriceTooHigh):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrUnauthorizedAction):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrOfferNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
