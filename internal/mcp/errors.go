package mcp

import (
	"errors"
	"fmt"

	"github.com/sparkmate/amptrack/internal/domain/material"
	"github.com/sparkmate/amptrack/internal/domain/project"
	"github.com/sparkmate/amptrack/internal/domain/timesheet"
)

// APIError represents a tool error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// mapError maps domain errors to tool error codes. Unknown errors pass
// through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects to see known IDs"}
	case errors.Is(err, project.ErrMissingName):
		return &APIError{Code: "VALIDATION", Message: "project name required"}
	case errors.Is(err, project.ErrMissingClient):
		return &APIError{Code: "VALIDATION", Message: "client name required"}
	case errors.Is(err, project.ErrMissingStartDate):
		return &APIError{Code: "VALIDATION", Message: "start date required"}
	case errors.Is(err, project.ErrNegativeBudget):
		return &APIError{Code: "VALIDATION", Message: "budget must not be negative"}
	case errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "VALIDATION", Message: "invalid project input", RecoveryHint: "Check status, priority and certificate_type values"}
	case errors.Is(err, material.ErrMissingName):
		return &APIError{Code: "VALIDATION", Message: "material name required"}
	case errors.Is(err, timesheet.ErrMissingDescription):
		return &APIError{Code: "VALIDATION", Message: "time entry description required"}
	default:
		return err
	}
}
