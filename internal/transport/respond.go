package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/outrun/memeverse/internal/domain/project"
	"github.com/outrun/memeverse/internal/domain/session"
)

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return http.StatusNotFound, "PROJECT_NOT_FOUND"
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND"
	case errors.Is(err, project.ErrInvalidInput), errors.Is(err, session.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
