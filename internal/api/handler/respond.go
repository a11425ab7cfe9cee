package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iconidentify/vidseo/internal/domain"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// errorStatus maps domain errors onto HTTP status codes and a stable code
// clients can switch on.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		return http.StatusBadRequest, "invalid_url"
	case errors.Is(err, domain.ErrUnsupportedLanguage):
		return http.StatusBadRequest, "unsupported_language"
	case errors.Is(err, domain.ErrConceptIndex):
		return http.StatusBadRequest, "concept_index"
	case errors.Is(err, domain.ErrRunNotFound):
		return http.StatusNotFound, "run_not_found"
	case errors.Is(err, domain.ErrSessionBusy):
		return http.StatusConflict, "session_busy"
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusServiceUnavailable, "not_configured"
	case errors.Is(err, domain.ErrGateway):
		return http.StatusBadGateway, "gateway"
	}
	return http.StatusInternalServerError, "internal"
}

func writeDomainError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}
