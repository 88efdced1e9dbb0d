package timesheet

import (
	"context"
	"time"
)

// SubmissionRepository is the record store behind the timesheet service.
// Implementations must enforce two invariants:
//
//   - uniqueness of (employee, date) among non-rejected submissions; a
//     violating Create fails with ErrDuplicateSubmission
//   - optimistic concurrency: Update and UpdateStatus match on the
//     submission's Version, increment it on success, and fail with
//     ErrStaleSubmission when the stored version has moved on
type SubmissionRepository interface {
	Create(ctx context.Context, submission Submission) (Submission, error)

	// Replace atomically deletes the rejected predecessor and inserts the
	// replacement, so the day is never left without a submission when the
	// insert fails.
	Replace(ctx context.Context, supersededID string, submission Submission) (Submission, error)

	GetByID(ctx context.Context, id string) (Submission, error)

	// GetByEmployeeAndDate retrieves the most recent submission for the
	// employee on the given work day, rejected or not. Returns nil when
	// none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Submission, error)

	List(ctx context.Context, filter ListFilter) ([]Submission, int64, error)

	// Update rewrites the editable fields and recomputed results. The
	// stored row must still carry submission.Version.
	Update(ctx context.Context, submission Submission) error

	// UpdateStatus applies a single workflow transition: status, approver
	// chain, rejection reason, and approver signature. The stored row must
	// still carry submission.Version.
	UpdateStatus(ctx context.Context, submission Submission) error

	Delete(ctx context.Context, id string) error
}
