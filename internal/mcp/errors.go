package mcp

import (
	"errors"
	"fmt"

	"github.com/outrun/memeverse/internal/domain/project"
	"github.com/outrun/memeverse/internal/domain/session"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check ID spelling"}
	case errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_PROJECT", Message: err.Error()}
	case errors.Is(err, session.ErrSessionNotFound):
		return &APIError{Code: "SESSION_NOT_FOUND", Message: "view session not found", RecoveryHint: "Call get_catalog_view to start a new view"}
	case errors.Is(err, session.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return nil
	}
}
