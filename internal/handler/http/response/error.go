package response

import (
	"errors"
	"net/http"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/timesheet"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrForbidden):
		Forbidden(w, "Not allowed to perform this action for the target date")
	case errors.Is(err, timesheet.ErrSessionNotFound):
		NotFound(w, "Session not found")
	case errors.Is(err, timesheet.ErrVersionConflict):
		Conflict(w, "Record was modified concurrently, reload and retry")
	case errors.Is(err, timesheet.ErrAlreadyClockedIn):
		Conflict(w, "An open session already exists")
	case errors.Is(err, timesheet.ErrNotClockedIn):
		BadRequest(w, "No open session to close", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidRole):
		BadRequest(w, "Unknown role", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
