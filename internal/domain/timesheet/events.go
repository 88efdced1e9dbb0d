package timesheet

import (
	"context"
	"time"
)

// TransitionEvent describes one committed workflow transition. Events are
// published after the transition commits and are fire-and-forget; a failing
// consumer never rolls the transition back.
type TransitionEvent struct {
	SubmissionID string         `json:"submission_id"`
	EmployeeID   string         `json:"employee_id"`
	From         ApprovalStatus `json:"from_status"`
	To           ApprovalStatus `json:"to_status"`
	ActorID      string         `json:"actor_id"`
	OccurredAt   time.Time      `json:"occurred_at"`
	Reason       *string        `json:"reason,omitempty"`
}

// AuditRecorder appends transition events to an immutable log. Records are
// never updated or deleted; corrections happen through later transitions.
type AuditRecorder interface {
	Record(ctx context.Context, event TransitionEvent) error
}
