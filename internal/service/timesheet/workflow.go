package timesheet

import (
	"time"

	"github.com/hanoisoft/timesheet-backend-go/internal/domain/employee"
	"github.com/hanoisoft/timesheet-backend-go/internal/domain/timesheet"
)

// The transition functions below are pure: they take the submission as
// read, apply the guards, and return the mutated copy plus the event to
// publish once the update commits. Persistence (and with it the optimistic
// version check) stays in the service.

// applyApprove advances the submission one step along the escalation chain.
func applyApprove(s timesheet.Submission, actor employee.Employee, signature []byte, now time.Time) (timesheet.Submission, timesheet.TransitionEvent, error) {
	if s.Status == timesheet.StatusApproved {
		return s, timesheet.TransitionEvent{}, timesheet.ErrSubmissionApproved
	}

	required, ok := s.Status.ApproverRole()
	if !ok {
		return s, timesheet.TransitionEvent{}, timesheet.ErrInvalidTransition
	}
	if !actor.HasRole(required) {
		return s, timesheet.TransitionEvent{}, timesheet.ErrPermissionDenied
	}
	// The team leader step is scoped to the leader's own department;
	// managers and admins act across departments.
	if required == employee.RoleTeamLeader &&
		employee.NormalizeDepartment(actor.Department) != employee.NormalizeDepartment(s.Department) {
		return s, timesheet.TransitionEvent{}, timesheet.ErrPermissionDenied
	}

	from := s.Status
	next, _ := s.Status.Next()
	s.Status = next

	switch required {
	case employee.RoleTeamLeader:
		s.TeamLeaderID = &actor.ID
	case employee.RoleManager:
		s.ManagerID = &actor.ID
	case employee.RoleAdmin:
		s.AdminID = &actor.ID
	}
	if len(signature) > 0 {
		s.ApproverSignature = signature
	}
	s.UpdatedAt = now

	return s, timesheet.TransitionEvent{
		SubmissionID: s.ID,
		EmployeeID:   s.EmployeeID,
		From:         from,
		To:           next,
		ActorID:      actor.ID,
		OccurredAt:   now,
	}, nil
}

// applyReject sends the submission back to its employee. Any reviewing role
// may reject from any pending state; a reason is mandatory.
func applyReject(s timesheet.Submission, actor employee.Employee, reason string, now time.Time) (timesheet.Submission, timesheet.TransitionEvent, error) {
	if s.Status == timesheet.StatusApproved {
		return s, timesheet.TransitionEvent{}, timesheet.ErrSubmissionApproved
	}
	if !s.Status.IsPending() {
		return s, timesheet.TransitionEvent{}, timesheet.ErrInvalidTransition
	}
	if !actor.IsApprover() {
		return s, timesheet.TransitionEvent{}, timesheet.ErrPermissionDenied
	}
	if reason == "" {
		return s, timesheet.TransitionEvent{}, timesheet.ErrRejectReasonRequired
	}

	from := s.Status
	s.Status = timesheet.StatusRejected
	s.RejectionReason = &reason
	// Ownership returns to the employee; nobody is due to act on it.
	s.CurrentApproverID = nil
	s.UpdatedAt = now

	return s, timesheet.TransitionEvent{
		SubmissionID: s.ID,
		EmployeeID:   s.EmployeeID,
		From:         from,
		To:           timesheet.StatusRejected,
		ActorID:      actor.ID,
		OccurredAt:   now,
		Reason:       &reason,
	}, nil
}
