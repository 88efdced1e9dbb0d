package response

import (
	"errors"
	"net/http"

	"github.com/hanoisoft/timesheet-backend-go/internal/domain/employee"
	"github.com/hanoisoft/timesheet-backend-go/internal/domain/timesheet"
	"github.com/hanoisoft/timesheet-backend-go/internal/pkg/validator"
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
	case errors.Is(err, timesheet.ErrSubmissionNotFound):
		NotFound(w, "Submission not found")
	case errors.Is(err, timesheet.ErrDuplicateSubmission):
		Conflict(w, "A submission for this day already exists")
	case errors.Is(err, timesheet.ErrStaleSubmission):
		Conflict(w, "Submission was modified by someone else, reload and retry")
	case errors.Is(err, timesheet.ErrSubmissionApproved):
		Conflict(w, "Submission is already approved and can no longer change")
	case errors.Is(err, timesheet.ErrInvalidTransition):
		Conflict(w, "Submission is not in a state that allows this action")
	case errors.Is(err, timesheet.ErrPermissionDenied):
		Forbidden(w, "You are not allowed to act on this submission")
	case errors.Is(err, timesheet.ErrRejectReasonRequired):
		BadRequest(w, "A rejection reason is required", nil)
	case errors.Is(err, timesheet.ErrInvalidDayType):
		BadRequest(w, "Unknown holiday type", nil)
	case errors.Is(err, timesheet.ErrCheckOutNotAfter):
		BadRequest(w, "Check-out must be after check-in", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrApproverNotFound):
		NotFound(w, "No approver found for this department")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
