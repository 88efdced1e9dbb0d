package timesheet

import (
	"context"
)

// TimesheetService defines business logic for timesheet submissions.
type TimesheetService interface {
	// Create validates the submission, computes work hours, and stores the
	// record as pending. A non-rejected submission already covering the
	// employee and date fails with ErrDuplicateSubmission; a rejected one
	// is deleted and replaced.
	Create(ctx context.Context, req CreateRequest) (SubmissionResponse, error)

	// Get retrieves a single submission by ID.
	Get(ctx context.Context, id string) (SubmissionResponse, error)

	// List retrieves submissions with filters and pagination.
	List(ctx context.Context, filter ListFilter) (ListResponse, error)

	// Update edits a pending or rejected submission owned by the caller and
	// recomputes work hours. A rejected submission returns to pending.
	Update(ctx context.Context, req UpdateRequest) (SubmissionResponse, error)

	// Delete removes a submission that has not been approved.
	Delete(ctx context.Context, id string) error

	// Approve advances the submission one step along the escalation chain.
	Approve(ctx context.Context, req ApproveRequest) (SubmissionResponse, error)

	// Reject sends the submission back to its employee with a reason.
	Reject(ctx context.Context, req RejectRequest) (SubmissionResponse, error)
}
