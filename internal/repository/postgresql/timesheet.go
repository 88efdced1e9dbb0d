package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hanoisoft/timesheet-backend-go/internal/domain/timesheet"
	"github.com/hanoisoft/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type submissionRepository struct {
	db *database.DB
}

const submissionColumns = `
	ts.id, ts.employee_id, ts.department, ts.date,
	ts.check_in, ts.check_out, ts.break_minutes,
	ts.shift_code, ts.shift_start, ts.shift_end,
	ts.is_holiday, ts.holiday_type,
	ts.comp_regular_minutes, ts.comp_legacy_overtime_minutes,
	ts.comp_overtime_before_minutes, ts.comp_overtime_after_minutes,
	ts.total_work_hours, ts.regular_work_hours,
	ts.overtime_before, ts.overtime_after,
	ts.status, ts.current_approver_id,
	ts.team_leader_id, ts.manager_id, ts.admin_id,
	ts.rejection_reason, ts.employee_signature, ts.approver_signature,
	ts.version, ts.created_at, ts.updated_at,
	e.full_name AS employee_name`

func scanSubmission(row pgx.Row) (timesheet.Submission, error) {
	var s timesheet.Submission
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Department, &s.Date,
		&s.CheckIn, &s.CheckOut, &s.BreakMinutes,
		&s.ShiftCode, &s.ShiftStart, &s.ShiftEnd,
		&s.IsHoliday, &s.HolidayType,
		&s.CompTime.RegularMinutes, &s.CompTime.LegacyOvertimeMinutes,
		&s.CompTime.OvertimeBeforeMinutes, &s.CompTime.OvertimeAfterMinutes,
		&s.TotalWorkHours, &s.RegularWorkHours,
		&s.OvertimeBefore, &s.OvertimeAfter,
		&s.Status, &s.CurrentApproverID,
		&s.TeamLeaderID, &s.ManagerID, &s.AdminID,
		&s.RejectionReason, &s.EmployeeSignature, &s.ApproverSignature,
		&s.Version, &s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName,
	)
	return s, err
}

// isUniqueViolation reports whether err is the partial unique index on
// (employee_id, date) among non-rejected submissions.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create implements timesheet.SubmissionRepository.
func (r *submissionRepository) Create(ctx context.Context, submission timesheet.Submission) (timesheet.Submission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheet_submissions (
			id, employee_id, department, date,
			check_in, check_out, break_minutes,
			shift_code, shift_start, shift_end,
			is_holiday, holiday_type,
			comp_regular_minutes, comp_legacy_overtime_minutes,
			comp_overtime_before_minutes, comp_overtime_after_minutes,
			total_work_hours, regular_work_hours,
			overtime_before, overtime_after,
			status, current_approver_id,
			employee_signature, version
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		submission.ID,
		submission.EmployeeID,
		submission.Department,
		submission.Date,
		submission.CheckIn,
		submission.CheckOut,
		submission.BreakMinutes,
		submission.ShiftCode,
		submission.ShiftStart,
		submission.ShiftEnd,
		submission.IsHoliday,
		submission.HolidayType,
		submission.CompTime.RegularMinutes,
		submission.CompTime.LegacyOvertimeMinutes,
		submission.CompTime.OvertimeBeforeMinutes,
		submission.CompTime.OvertimeAfterMinutes,
		submission.TotalWorkHours,
		submission.RegularWorkHours,
		submission.OvertimeBefore,
		submission.OvertimeAfter,
		submission.Status,
		submission.CurrentApproverID,
		submission.EmployeeSignature,
		submission.Version,
	).Scan(&submission.CreatedAt, &submission.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return timesheet.Submission{}, timesheet.ErrDuplicateSubmission
		}
		return timesheet.Submission{}, fmt.Errorf("failed to create submission: %w", err)
	}

	return submission, nil
}

// Replace implements timesheet.SubmissionRepository.
func (r *submissionRepository) Replace(ctx context.Context, supersededID string, submission timesheet.Submission) (timesheet.Submission, error) {
	var created timesheet.Submission
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := r.Delete(txCtx, supersededID); err != nil {
			return fmt.Errorf("failed to delete superseded submission: %w", err)
		}

		var err error
		created, err = r.Create(txCtx, submission)
		return err
	})
	if err != nil {
		return timesheet.Submission{}, err
	}
	return created, nil
}

// GetByID implements timesheet.SubmissionRepository.
func (r *submissionRepository) GetByID(ctx context.Context, id string) (timesheet.Submission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + submissionColumns + `
		FROM timesheet_submissions ts
		LEFT JOIN employees e ON e.id = ts.employee_id
		WHERE ts.id = $1
	`

	s, err := scanSubmission(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.Submission{}, timesheet.ErrSubmissionNotFound
		}
		return timesheet.Submission{}, fmt.Errorf("failed to get submission by id: %w", err)
	}

	return s, nil
}

// GetByEmployeeAndDate implements timesheet.SubmissionRepository.
func (r *submissionRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*timesheet.Submission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + submissionColumns + `
		FROM timesheet_submissions ts
		LEFT JOIN employees e ON e.id = ts.employee_id
		WHERE ts.employee_id = $1
		  AND ts.date = $2
		ORDER BY ts.created_at DESC
		LIMIT 1
	`

	s, err := scanSubmission(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No submission for this day yet
		}
		return nil, fmt.Errorf("failed to get submission by employee and date: %w", err)
	}

	return &s, nil
}

// List implements timesheet.SubmissionRepository.
func (r *submissionRepository) List(ctx context.Context, filter timesheet.ListFilter) ([]timesheet.Submission, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND ts.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		where += fmt.Sprintf(" AND ts.department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND ts.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.DateFrom != nil {
		where += fmt.Sprintf(" AND ts.date >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		where += fmt.Sprintf(" AND ts.date <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM timesheet_submissions ts WHERE " + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit

	selectQuery := fmt.Sprintf(`
		SELECT `+submissionColumns+`
		FROM timesheet_submissions ts
		LEFT JOIN employees e ON e.id = ts.employee_id
		WHERE %s
		ORDER BY ts.date DESC, ts.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	submissions := []timesheet.Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read submissions: %w", err)
	}

	return submissions, total, nil
}

// Update implements timesheet.SubmissionRepository. The version predicate is
// the optimistic-concurrency guard; a row that matched on id but not on
// version has moved on since the caller read it.
func (r *submissionRepository) Update(ctx context.Context, submission timesheet.Submission) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheet_submissions SET
			check_in = $1,
			check_out = $2,
			break_minutes = $3,
			shift_code = $4,
			shift_start = $5,
			shift_end = $6,
			is_holiday = $7,
			holiday_type = $8,
			comp_regular_minutes = $9,
			comp_legacy_overtime_minutes = $10,
			comp_overtime_before_minutes = $11,
			comp_overtime_after_minutes = $12,
			total_work_hours = $13,
			regular_work_hours = $14,
			overtime_before = $15,
			overtime_after = $16,
			status = $17,
			current_approver_id = $18,
			team_leader_id = NULL,
			manager_id = NULL,
			admin_id = NULL,
			rejection_reason = NULL,
			approver_signature = NULL,
			employee_signature = $19,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $20 AND version = $21
	`

	commandTag, err := q.Exec(ctx, query,
		submission.CheckIn,
		submission.CheckOut,
		submission.BreakMinutes,
		submission.ShiftCode,
		submission.ShiftStart,
		submission.ShiftEnd,
		submission.IsHoliday,
		submission.HolidayType,
		submission.CompTime.RegularMinutes,
		submission.CompTime.LegacyOvertimeMinutes,
		submission.CompTime.OvertimeBeforeMinutes,
		submission.CompTime.OvertimeAfterMinutes,
		submission.TotalWorkHours,
		submission.RegularWorkHours,
		submission.OvertimeBefore,
		submission.OvertimeAfter,
		submission.Status,
		submission.CurrentApproverID,
		submission.EmployeeSignature,
		submission.ID,
		submission.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return timesheet.ErrDuplicateSubmission
		}
		return fmt.Errorf("failed to update submission: %w", err)
	}

	if commandTag.RowsAffected() != 1 {
		return r.resolveMissedUpdate(ctx, submission.ID)
	}
	return nil
}

// UpdateStatus implements timesheet.SubmissionRepository.
func (r *submissionRepository) UpdateStatus(ctx context.Context, submission timesheet.Submission) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheet_submissions SET
			status = $1,
			current_approver_id = $2,
			team_leader_id = $3,
			manager_id = $4,
			admin_id = $5,
			rejection_reason = $6,
			approver_signature = $7,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $8 AND version = $9
	`

	commandTag, err := q.Exec(ctx, query,
		submission.Status,
		submission.CurrentApproverID,
		submission.TeamLeaderID,
		submission.ManagerID,
		submission.AdminID,
		submission.RejectionReason,
		submission.ApproverSignature,
		submission.ID,
		submission.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}

	if commandTag.RowsAffected() != 1 {
		return r.resolveMissedUpdate(ctx, submission.ID)
	}
	return nil
}

// resolveMissedUpdate distinguishes a vanished row from a version conflict.
func (r *submissionRepository) resolveMissedUpdate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM timesheet_submissions WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check submission existence: %w", err)
	}
	if !exists {
		return timesheet.ErrSubmissionNotFound
	}
	return timesheet.ErrStaleSubmission
}

// Delete implements timesheet.SubmissionRepository.
func (r *submissionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, "DELETE FROM timesheet_submissions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return timesheet.ErrSubmissionNotFound
	}
	return nil
}

func NewSubmissionRepository(db *database.DB) timesheet.SubmissionRepository {
	return &submissionRepository{db: db}
}
