package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/pricing"
	"rentdesk-backend/internal/service"
)

type response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondOK(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, response{Success: true, Data: data})
}

func respondCreated(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, response{Success: true, Data: data})
}

func respondBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, response{Success: false, Error: msg})
}

// respondError maps service errors onto HTTP statuses. Store failures stay
// a generic 500; the message is logged, not leaked.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrReservationNotFound):
		writeJSON(w, http.StatusNotFound, response{Success: false, Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, response{Success: false, Error: err.Error()})
	case errors.Is(err, domain.ErrTierOverlap):
		writeJSON(w, http.StatusConflict, response{Success: false, Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorizedAssignee):
		writeJSON(w, http.StatusForbidden, response{Success: false, Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrAccountDisabled):
		writeJSON(w, http.StatusUnauthorized, response{Success: false, Error: err.Error()})
	case errors.Is(err, service.ErrInvalidTierRange), errors.Is(err, service.ErrInvalidTierPrice),
		errors.Is(err, pricing.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, response{Success: false, Error: err.Error()})
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, response{Success: false, Error: "internal error"})
	}
}
