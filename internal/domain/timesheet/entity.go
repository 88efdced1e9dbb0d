package timesheet

import (
	"time"

	"github.com/hanoisoft/timesheet-backend-go/internal/domain/employee"
)

// ApprovalStatus is the workflow state of a submission.
//
// Lifecycle: created pending; advances strictly forward on approve
// (pending -> pending_manager -> pending_admin -> approved); jumps to
// rejected from any pending_* on reject; rejected returns to pending on
// edit. approved is terminal and blocks any further mutation or deletion.
type ApprovalStatus string

const (
	StatusPending        ApprovalStatus = "pending"
	StatusPendingManager ApprovalStatus = "pending_manager"
	StatusPendingAdmin   ApprovalStatus = "pending_admin"
	StatusApproved       ApprovalStatus = "approved"
	StatusRejected       ApprovalStatus = "rejected"
)

// IsPending reports whether the status still awaits a reviewer decision.
func (s ApprovalStatus) IsPending() bool {
	return s == StatusPending || s == StatusPendingManager || s == StatusPendingAdmin
}

// Next returns the status an approval moves the submission into.
func (s ApprovalStatus) Next() (ApprovalStatus, bool) {
	switch s {
	case StatusPending:
		return StatusPendingManager, true
	case StatusPendingManager:
		return StatusPendingAdmin, true
	case StatusPendingAdmin:
		return StatusApproved, true
	}
	return "", false
}

// ApproverRole returns the role that may act on a submission in this status.
func (s ApprovalStatus) ApproverRole() (employee.Role, bool) {
	switch s {
	case StatusPending:
		return employee.RoleTeamLeader, true
	case StatusPendingManager:
		return employee.RoleManager, true
	case StatusPendingAdmin:
		return employee.RoleAdmin, true
	}
	return "", false
}

// CompTimeLedger holds the four per-submission compensatory-time deduction
// buckets, all in whole minutes. Each deduction subtracts from its own
// bucket and never drives a result below zero. LegacyOvertimeMinutes is the
// combined bucket kept for records created before the before/after split; it
// is charged against the before-cutoff bucket first, overflow against after.
type CompTimeLedger struct {
	RegularMinutes        int
	LegacyOvertimeMinutes int
	OvertimeBeforeMinutes int
	OvertimeAfterMinutes  int
}

// IsZero reports whether no compensatory time is recorded.
func (l CompTimeLedger) IsZero() bool {
	return l.RegularMinutes == 0 && l.LegacyOvertimeMinutes == 0 &&
		l.OvertimeBeforeMinutes == 0 && l.OvertimeAfterMinutes == 0
}

// Submission is one workday attendance record owned by the employee who
// created it until it is approved. At most one non-rejected submission may
// exist per employee and date; a rejected one is replaced by delete and
// recreate, never resurrected in place.
type Submission struct {
	ID         string
	EmployeeID string
	Department string
	Date       time.Time

	CheckIn      time.Time
	CheckOut     time.Time
	BreakMinutes int
	ShiftCode    string
	ShiftStart   *int // minute-of-day override; wins over the catalog
	ShiftEnd     *int
	IsHoliday    bool
	HolidayType  string
	CompTime     CompTimeLedger

	// Computed by the work-hours calculator. Hours are 2-decimal strings,
	// overtime buckets are "H:MM". All arithmetic behind them is integer
	// minutes; these fields exist only for renderers.
	TotalWorkHours   string
	RegularWorkHours string
	OvertimeBefore   string
	OvertimeAfter    string

	Status            ApprovalStatus
	CurrentApproverID *string // resolved via the escalation chain, nil when unresolvable or terminal
	TeamLeaderID      *string
	ManagerID         *string
	AdminID           *string
	RejectionReason   *string

	// Signature blobs are opaque to this service; rendering collaborators
	// interpret them.
	EmployeeSignature []byte
	ApproverSignature []byte

	// Version is the optimistic-concurrency counter, checked and
	// incremented on every mutation.
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / join
	EmployeeName *string
}

// Editable reports whether the record may still be modified or deleted.
func (s *Submission) Editable() bool {
	return s.Status != StatusApproved
}
