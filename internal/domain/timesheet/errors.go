package timesheet

import "errors"

// Timesheet domain errors. All are recoverable by the caller; nothing here
// is fatal to the process.
var (
	ErrSubmissionNotFound = errors.New("timesheet submission not found")

	// Creation
	ErrDuplicateSubmission = errors.New("a non-rejected submission already exists for this employee and date")
	ErrInvalidDayType      = errors.New("unrecognized holiday type")
	ErrCheckOutNotAfter    = errors.New("check-out must be later than check-in")

	// Workflow
	ErrPermissionDenied     = errors.New("requester role does not match the submission's current approver")
	ErrInvalidTransition    = errors.New("submission state does not allow this transition")
	ErrSubmissionApproved   = errors.New("submission is approved and can no longer change")
	ErrRejectReasonRequired = errors.New("a reason is required to reject a submission")

	// Concurrency: the record changed since it was read; retry against
	// freshly read state.
	ErrStaleSubmission = errors.New("submission was modified concurrently")
)
