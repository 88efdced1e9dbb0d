package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/hanoisoft/timesheet-backend-go/internal/domain/employee"
	"github.com/hanoisoft/timesheet-backend-go/internal/domain/timesheet"
	"github.com/hanoisoft/timesheet-backend-go/internal/pkg/database"
	"github.com/hanoisoft/timesheet-backend-go/internal/pkg/events"
	"github.com/hanoisoft/timesheet-backend-go/internal/service/worktime"
)

const (
	EventSubmitted = "timesheet_submitted"
	EventApproved  = "timesheet_approved"
	EventRejected  = "timesheet_rejected"
)

type TimesheetServiceImpl struct {
	db *database.DB
	timesheet.SubmissionRepository
	employee.EmployeeRepository
	calculator *worktime.Calculator
	audit      timesheet.AuditRecorder
	hub        *events.Hub
}

func NewTimesheetService(
	db *database.DB,
	submissionRepo timesheet.SubmissionRepository,
	employeeRepo employee.EmployeeRepository,
	calculator *worktime.Calculator,
	audit timesheet.AuditRecorder,
	hub *events.Hub,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		db:                   db,
		SubmissionRepository: submissionRepo,
		EmployeeRepository:   employeeRepo,
		calculator:           calculator,
		audit:                audit,
		hub:                  hub,
	}
}

// actorFromContext resolves the authenticated employee behind the request.
func (t *TimesheetServiceImpl) actorFromContext(ctx context.Context) (employee.Employee, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return employee.Employee{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	actor, err := t.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to load acting employee: %w", err)
	}
	return actor, nil
}

// compute runs the work-hours calculator against the submission's raw
// fields and writes the formatted results back.
func (t *TimesheetServiceImpl) compute(s *timesheet.Submission, owner employee.Employee) error {
	dayType, err := timesheet.ClassifyDayType(s.IsHoliday, s.HolidayType)
	if err != nil {
		return err
	}

	result := t.calculator.Calculate(worktime.Input{
		DayType:       dayType,
		CheckIn:       worktime.MinuteOfDay(s.CheckIn),
		CheckOut:      worktime.MinuteOfDay(s.CheckOut),
		BreakMinutes:  s.BreakMinutes,
		Shift:         worktime.ResolveShift(s.ShiftCode, s.ShiftStart, s.ShiftEnd),
		ShiftCode:     s.ShiftCode,
		MaternityFlex: owner.MaternityFlexOn(s.Date),
		CompTime:      s.CompTime,
	})

	s.TotalWorkHours = result.TotalHours()
	s.RegularWorkHours = result.RegularHours()
	s.OvertimeBefore = result.OvertimeBeforeHM()
	s.OvertimeAfter = result.OvertimeAfterHM()
	return nil
}

// Create implements timesheet.TimesheetService.
func (t *TimesheetServiceImpl) Create(ctx context.Context, req timesheet.CreateRequest) (timesheet.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.SubmissionResponse{}, err
	}

	actor, err := t.actorFromContext(ctx)
	if err != nil {
		return timesheet.SubmissionResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	checkIn, _ := time.Parse(time.RFC3339, req.CheckIn)
	checkOut, _ := time.Parse(time.RFC3339, req.CheckOut)
	if checkOut.Before(checkIn) {
		return timesheet.SubmissionResponse{}, timesheet.ErrCheckOutNotAfter
	}

	// One non-rejected submission per employee and day. A rejected
	// predecessor is deleted and replaced, never reopened.
	existing, err := t.SubmissionRepository.GetByEmployeeAndDate(ctx, actor.ID, date)
	if err != nil {
		return timesheet.SubmissionResponse{}, fmt.Errorf("failed to look up submission for date: %w", err)
	}
	if existing != nil && existing.Status != timesheet.StatusRejected {
		return timesheet.SubmissionResponse{}, timesheet.ErrDuplicateSubmission
	}

	id, err := uuid.NewV7()
	if err != nil {
		return timesheet.SubmissionResponse{}, fmt.Errorf("failed to generate submission id: %w", err)
	}

	submission := timesheet.Submission{
		ID:                id.String(),
		EmployeeID:        actor.ID,
		Department:        employee.NormalizeDepartment(actor.Department),
		Date:              date,
		CheckIn:           checkIn,
		CheckOut:          checkOut,
		BreakMinutes:      req.BreakMinutes,
		ShiftCode:         req.ShiftCode,
		ShiftStart:        parseTimeOfDay(req.ShiftStart),
		ShiftEnd:          parseTimeOfDay(req.ShiftEnd),
		IsHoliday:         req.IsHoliday,
		HolidayType:       req.HolidayType,
		CompTime:          req.CompTime.ToLedger(),
		Status:            timesheet.StatusPending,
		EmployeeSignature: req.Signature,
		Version:           1,
	}

	if err := t.compute(&submission, actor); err != nil {
		return timesheet.SubmissionResponse{}, err
	}
	submission.CurrentApproverID = t.resolveApprover(ctx, submission.Department, submission.Status)

	var created timesheet.Submission
	if existing != nil {
		created, err = t.SubmissionRepository.Replace(ctx, existing.ID, submission)
	} else {
		created, err = t.SubmissionRepository.Create(ctx, submission)
	}
	if err != nil {
		if errors.Is(err, timesheet.ErrDuplicateSubmission) {
			return timesheet.SubmissionResponse{}, timesheet.ErrDuplicateSubmission
		}
		return timesheet.SubmissionResponse{}, fmt.Errorf("failed to create submission: %w", err)
	}

	if created.CurrentApproverID != nil {
		t.hub.Publish(*created.CurrentApproverID, events.Event{
			EmployeeID: *created.CurrentApproverID,
			Name:       EventSubmitted,
			Data:       mapSubmissionToResponse(created),
		})
	}

	return mapSubmissionToResponse(created), nil
}

// resolveApprover finds the employee expected to act next. An unresolvable
// chain is not an error; the submission simply carries no addressee until
// someone with the role exists.
func (t *TimesheetServiceImpl) resolveApprover(ctx context.Context, department string, status timesheet.ApprovalStatus) *string {
	role, ok := status.ApproverRole()
	if !ok {
		return nil
	}
	approverID, err := t.EmployeeRepository.FindApprover(ctx, department, role)
	if err != nil {
		if !errors.Is(err, employee.ErrApproverNotFound) {
			slog.Warn("failed to resolve approver", "department", department, "role", role, "error", err)
		}
		return nil
	}
	return &approverID
}

// Get implements timesheet.TimesheetService.
func (t *TimesheetServiceImpl) Get(ctx context.Context, id string) (timesheet.SubmissionResponse, error) {
	submission, err := t.SubmissionRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timesheet.ErrSubmissionNotFound) {
			return timesheet.SubmissionResponse{}, timesheet.ErrSubmissionNotFound
		}
		return timesheet.SubmissionResponse{}, fmt.Errorf("failed to get submission: %w", err)
	}
	return mapSubmissionToResponse(submission), nil
}

// List implements timesheet.TimesheetService.
func (t *TimesheetServiceImpl) List(ctx context.Context, filter timesheet.ListFilter) (timesheet.ListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	submissions, total, err := t.SubmissionRepository.List(ctx, filter)
	if err != nil {
		return timesheet.ListResponse{}, fmt.Errorf("failed to list submissions: %w", err)
	}

	responses := make([]timesheet.SubmissionResponse, 0, len(submissions))
	for _, s := range submissions {
		responses = append(responses, mapSubmissionToResponse(s))
	}

	return timesheet.ListResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Submissions: responses,
	}, nil
}

// Update implements timesheet.TimesheetService. Editing a rejected
// submission is the only path back to pending; a submission already
// escalated past the first step must be rejected before it can change.
func (t *TimesheetServiceImpl) Update(ctx context.Context, req timesheet.UpdateRequest) (timesheet.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.SubmissionResponse{}, err
	}

	actor, err := t.actorFromContext(ctx)
	if err != nil {
		return timesheet.SubmissionResponse{}, err
	}

	submission, err := t.SubmissionRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, timesheet.ErrSubmissionNotFound) {
			return timesheet.SubmissionResponse{}, timesheet.ErrSubmissionNotFound
		}
		return timesheet.SubmissionResponse{}, fmt.Errorf("failed to get submission: %w", err)
	}

	if submission.Status == timesheet.StatusApproved {
		return timesheet.SubmissionResponse{}, timesheet.ErrSubmissionApproved
	}
	if submission.EmployeeID != actor.ID {
		return timesheet.SubmissionResponse{}, timesheet.ErrPermissionDenied
	}
	if submission.Status != timesheet.StatusPending && submission.Status != timesheet.StatusRejected {
		return timesheet.SubmissionResponse{}, timesheet.ErrInvalidTransition
	}

	from := submission.Status

	submission.CheckIn, _ = time.Parse(time.RFC3339, req.CheckIn)
	submission.CheckOut, _ = time.Parse(time.RFC3339, req.CheckOut)
	if submission.CheckOut.Before(submission.CheckIn) {
		return timesheet.SubmissionResponse{}, timesheet.ErrCheckOutNotAfter
	}
	submission.BreakMinutes = req.BreakMinutes
	submission.ShiftCode = req.ShiftCode
	submission.ShiftStart = parseTimeOfDay(req.ShiftStart)
	submission.ShiftEnd = parseTimeOfDay(req.ShiftEnd)
	submission.IsHoliday = req.IsHoliday
	submission.HolidayType = req.HolidayType
	submission.CompTime = req.CompTime.ToLedger()
	if len(req.Signature) > 0 {
		submission.EmployeeSignature = req.Signature
	}

	// An edit restarts the chain from the beginning.
	submission.Status = timesheet.StatusPending
	submission.RejectionReason = nil
	submission.TeamLeaderID = nil
	submission.ManagerID = nil
	submission.AdminID = nil
	submission.ApproverSignature = nil
	submission.UpdatedAt = time.Now().UTC()

	if err := t.compute(&submission, actor); err != nil {
		return timesheet.SubmissionResponse{}, err
	}
	submission.CurrentApproverID = t.resolveApprover(ctx, submission.Department, submission.Status)

	if err := t.SubmissionRepository.Update(ctx, submission); err != nil {
		if errors.Is(err, timesheet.ErrStaleSubmission) {
			return timesheet.SubmissionResponse{}, timesheet.ErrStaleSubmission
		}
		return timesheet.SubmissionResponse{}, fmt.Errorf("failed to update submission: %w", err)
	}
	submission.Version++

	if from == timesheet.StatusRejected {
		t.afterTransition(submission, timesheet.TransitionEvent{
			SubmissionID: submission.ID,
			EmployeeID:   submission.EmployeeID,
			From:         from,
			To:           timesheet.StatusPending,
			ActorID:      actor.ID,
			OccurredAt:   submission.UpdatedAt,
		})
	}

	return mapSubmissionToResponse(submission), nil
}

// Delete implements timesheet.TimesheetService.
func (t *TimesheetServiceImpl) Delete(ctx context.Context, id string) error {
	actor, err := t.actorFromContext(ctx)
	if err != nil {
		return err
	}

	submission, err := t.SubmissionRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timesheet.ErrSubmissionNotFound) {
			return timesheet.ErrSubmissionNotFound
		}
		return fmt.Errorf("failed to get submission: %w", err)
	}

	if submission.Status == timesheet.StatusApproved {
		return timesheet.ErrSubmissionApproved
	}
	if submission.EmployeeID != actor.ID && !actor.HasRole(employee.RoleAdmin) {
		return timesheet.ErrPermissionDenied
	}

	if err := t.SubmissionRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	return nil
}

// Approve implements timesheet.TimesheetService.
func (t *TimesheetServiceImpl) Approve(ctx context.Context, req timesheet.ApproveRequest) (timesheet.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.SubmissionResponse{}, err
	}

	actor, err := t.actorFromContext(ctx)
	if err != nil {
		return timesheet.SubmissionResponse{}, err
	}

	submission, err := t.SubmissionRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, timesheet.ErrSubmissionNotFound) {
			return timesheet.SubmissionResponse{}, timesheet.ErrSubmissionNotFound
		}
		return timesheet.SubmissionResponse{}, fmt.Errorf("failed to get submission: %w", err)
	}

	now := time.Now().UTC()
	updated, event, err := applyApprove(submission, actor, req.Signature, now)
	if err != nil {
		return timesheet.SubmissionResponse{}, err
	}
	updated.CurrentApproverID = t.resolveApprover(ctx, updated.Department, updated.Status)

	if err := t.SubmissionRepository.UpdateStatus(ctx, updated); err != nil {
		if errors.Is(err, timesheet.ErrStaleSubmission) {
			return timesheet.SubmissionResponse{}, timesheet.ErrStaleSubmission
		}
		return timesheet.SubmissionResponse{}, fmt.Errorf("failed to commit approval: %w", err)
	}
	updated.Version++

	t.afterTransition(updated, event)

	return mapSubmissionToResponse(updated), nil
}

// Reject implements timesheet.TimesheetService.
func (t *TimesheetServiceImpl) Reject(ctx context.Context, req timesheet.RejectRequest) (timesheet.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.SubmissionResponse{}, err
	}

	actor, err := t.actorFromContext(ctx)
	if err != nil {
		return timesheet.SubmissionResponse{}, err
	}

	submission, err := t.SubmissionRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, timesheet.ErrSubmissionNotFound) {
			return timesheet.SubmissionResponse{}, timesheet.ErrSubmissionNotFound
		}
		return timesheet.SubmissionResponse{}, fmt.Errorf("failed to get submission: %w", err)
	}

	now := time.Now().UTC()
	updated, event, err := applyReject(submission, actor, req.Reason, now)
	if err != nil {
		return timesheet.SubmissionResponse{}, err
	}

	if err := t.SubmissionRepository.UpdateStatus(ctx, updated); err != nil {
		if errors.Is(err, timesheet.ErrStaleSubmission) {
			return timesheet.SubmissionResponse{}, timesheet.ErrStaleSubmission
		}
		return timesheet.SubmissionResponse{}, fmt.Errorf("failed to commit rejection: %w", err)
	}
	updated.Version++

	t.afterTransition(updated, event)

	return mapSubmissionToResponse(updated), nil
}

// afterTransition records and broadcasts a committed transition. Both are
// fire-and-forget: a failing recorder or absent subscriber never rolls the
// transition back.
func (t *TimesheetServiceImpl) afterTransition(s timesheet.Submission, event timesheet.TransitionEvent) {
	if err := t.audit.Record(context.Background(), event); err != nil {
		slog.Warn("failed to record audit event", "submission_id", event.SubmissionID, "error", err)
	}

	name := EventApproved
	if event.To == timesheet.StatusRejected {
		name = EventRejected
	} else if event.To == timesheet.StatusPending {
		name = EventSubmitted
	}

	// The owner always hears about their record; whoever is due to act
	// next hears about it too.
	t.hub.Publish(s.EmployeeID, events.Event{EmployeeID: s.EmployeeID, Name: name, Data: event})
	if s.CurrentApproverID != nil && *s.CurrentApproverID != s.EmployeeID {
		t.hub.Publish(*s.CurrentApproverID, events.Event{EmployeeID: *s.CurrentApproverID, Name: name, Data: event})
	}
}

// parseTimeOfDay converts an optional "HH:MM" string to minutes since
// midnight. Validation happened in the DTO; a malformed value here is nil.
func parseTimeOfDay(s *string) *int {
	if s == nil {
		return nil
	}
	parsed, err := time.Parse("15:04", *s)
	if err != nil {
		return nil
	}
	v := worktime.MinuteOfDay(parsed)
	return &v
}

// mapSubmissionToResponse converts a Submission entity to SubmissionResponse.
func mapSubmissionToResponse(s timesheet.Submission) timesheet.SubmissionResponse {
	return timesheet.SubmissionResponse{
		ID:                s.ID,
		EmployeeID:        s.EmployeeID,
		EmployeeName:      s.EmployeeName,
		Department:        s.Department,
		Date:              s.Date.Format("2006-01-02"),
		CheckIn:           s.CheckIn.Format(time.RFC3339),
		CheckOut:          s.CheckOut.Format(time.RFC3339),
		BreakMinutes:      s.BreakMinutes,
		ShiftCode:         s.ShiftCode,
		IsHoliday:         s.IsHoliday,
		HolidayType:       s.HolidayType,
		TotalWorkHours:    s.TotalWorkHours,
		RegularWorkHours:  s.RegularWorkHours,
		OvertimeBefore:    s.OvertimeBefore,
		OvertimeAfter:     s.OvertimeAfter,
		Status:            s.Status,
		CurrentApproverID: s.CurrentApproverID,
		RejectionReason:   s.RejectionReason,
		Version:           s.Version,
		CreatedAt:         s.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         s.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
