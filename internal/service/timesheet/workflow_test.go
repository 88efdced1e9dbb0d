package timesheet

import (
	"testing"
	"time"

	"github.com/hanoisoft/timesheet-backend-go/internal/domain/employee"
	"github.com/hanoisoft/timesheet-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var workflowNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func pendingSubmission(status timesheet.ApprovalStatus) timesheet.Submission {
	return timesheet.Submission{
		ID:         "sub-1",
		EmployeeID: "emp-1",
		Department: "ENGINEERING",
		Status:     status,
		Version:    1,
	}
}

func approver(id, department string, roles ...employee.Role) employee.Employee {
	return employee.Employee{
		ID:         id,
		Department: department,
		Roles:      roles,
	}
}

func TestApplyApprove_FullChain(t *testing.T) {
	s := pendingSubmission(timesheet.StatusPending)

	teamLeader := approver("tl-1", "ENGINEERING", employee.RoleTeamLeader)
	manager := approver("mgr-1", "SALES", employee.RoleManager)
	admin := approver("adm-1", "HR", employee.RoleAdmin)

	s, event, err := applyApprove(s, teamLeader, []byte("sig-tl"), workflowNow)
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusPendingManager, s.Status)
	assert.Equal(t, "tl-1", *s.TeamLeaderID)
	assert.Equal(t, timesheet.StatusPending, event.From)
	assert.Equal(t, timesheet.StatusPendingManager, event.To)
	assert.Equal(t, "tl-1", event.ActorID)

	s, event, err = applyApprove(s, manager, nil, workflowNow)
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusPendingAdmin, s.Status)
	assert.Equal(t, "mgr-1", *s.ManagerID)
	assert.Equal(t, timesheet.StatusPendingManager, event.From)

	s, event, err = applyApprove(s, admin, []byte("sig-adm"), workflowNow)
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusApproved, s.Status)
	assert.Equal(t, "adm-1", *s.AdminID)
	assert.Equal(t, timesheet.StatusApproved, event.To)

	// Signatures: the last one provided wins, nil leaves it untouched.
	assert.Equal(t, []byte("sig-adm"), s.ApproverSignature)
}

func TestApplyApprove_WrongRoleForStep(t *testing.T) {
	cases := []struct {
		name   string
		status timesheet.ApprovalStatus
		actor  employee.Employee
	}{
		{"manager cannot take team leader step", timesheet.StatusPending, approver("mgr-1", "ENGINEERING", employee.RoleManager)},
		{"admin cannot take team leader step", timesheet.StatusPending, approver("adm-1", "ENGINEERING", employee.RoleAdmin)},
		{"team leader cannot take manager step", timesheet.StatusPendingManager, approver("tl-1", "ENGINEERING", employee.RoleTeamLeader)},
		{"manager cannot take admin step", timesheet.StatusPendingAdmin, approver("mgr-1", "ENGINEERING", employee.RoleManager)},
		{"plain employee cannot approve", timesheet.StatusPending, approver("emp-2", "ENGINEERING", employee.RoleEmployee)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := applyApprove(pendingSubmission(tc.status), tc.actor, nil, workflowNow)
			assert.ErrorIs(t, err, timesheet.ErrPermissionDenied)
		})
	}
}

func TestApplyApprove_TeamLeaderOwnDepartmentOnly(t *testing.T) {
	s := pendingSubmission(timesheet.StatusPending)

	outsider := approver("tl-2", "SALES", employee.RoleTeamLeader)
	_, _, err := applyApprove(s, outsider, nil, workflowNow)
	assert.ErrorIs(t, err, timesheet.ErrPermissionDenied)

	// Department comparison survives case and whitespace noise.
	insider := approver("tl-1", "  engineering ", employee.RoleTeamLeader)
	updated, _, err := applyApprove(s, insider, nil, workflowNow)
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusPendingManager, updated.Status)
}

func TestApplyApprove_ManagerActsAcrossDepartments(t *testing.T) {
	s := pendingSubmission(timesheet.StatusPendingManager)

	manager := approver("mgr-1", "TOTALLY-ELSEWHERE", employee.RoleManager)
	updated, _, err := applyApprove(s, manager, nil, workflowNow)
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusPendingAdmin, updated.Status)
}

func TestApplyApprove_TerminalAndRejectedStates(t *testing.T) {
	admin := approver("adm-1", "HR", employee.RoleAdmin)

	_, _, err := applyApprove(pendingSubmission(timesheet.StatusApproved), admin, nil, workflowNow)
	assert.ErrorIs(t, err, timesheet.ErrSubmissionApproved)

	_, _, err = applyApprove(pendingSubmission(timesheet.StatusRejected), admin, nil, workflowNow)
	assert.ErrorIs(t, err, timesheet.ErrInvalidTransition)
}

func TestApplyReject(t *testing.T) {
	s := pendingSubmission(timesheet.StatusPendingManager)
	approverID := "tl-1"
	s.CurrentApproverID = &approverID

	manager := approver("mgr-1", "SALES", employee.RoleManager)
	updated, event, err := applyReject(s, manager, "check-out looks wrong", workflowNow)
	require.NoError(t, err)

	assert.Equal(t, timesheet.StatusRejected, updated.Status)
	assert.Equal(t, "check-out looks wrong", *updated.RejectionReason)
	assert.Nil(t, updated.CurrentApproverID)
	assert.Equal(t, timesheet.StatusPendingManager, event.From)
	assert.Equal(t, timesheet.StatusRejected, event.To)
	require.NotNil(t, event.Reason)
	assert.Equal(t, "check-out looks wrong", *event.Reason)
}

func TestApplyReject_Guards(t *testing.T) {
	manager := approver("mgr-1", "SALES", employee.RoleManager)
	plain := approver("emp-2", "SALES", employee.RoleEmployee)

	_, _, err := applyReject(pendingSubmission(timesheet.StatusApproved), manager, "reason", workflowNow)
	assert.ErrorIs(t, err, timesheet.ErrSubmissionApproved)

	_, _, err = applyReject(pendingSubmission(timesheet.StatusRejected), manager, "reason", workflowNow)
	assert.ErrorIs(t, err, timesheet.ErrInvalidTransition)

	_, _, err = applyReject(pendingSubmission(timesheet.StatusPending), plain, "reason", workflowNow)
	assert.ErrorIs(t, err, timesheet.ErrPermissionDenied)

	_, _, err = applyReject(pendingSubmission(timesheet.StatusPending), manager, "", workflowNow)
	assert.ErrorIs(t, err, timesheet.ErrRejectReasonRequired)
}
