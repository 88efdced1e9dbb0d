package timesheet

import (
	"time"

	"github.com/hanoisoft/timesheet-backend-go/internal/pkg/validator"
)

// ========================================
// TIMESHEET DTOs
// ========================================

// CompTimeRequest mirrors CompTimeLedger on the wire.
type CompTimeRequest struct {
	RegularMinutes        int `json:"regular_minutes"`
	LegacyOvertimeMinutes int `json:"legacy_overtime_minutes"`
	OvertimeBeforeMinutes int `json:"overtime_before_minutes"`
	OvertimeAfterMinutes  int `json:"overtime_after_minutes"`
}

// ToLedger converts the request buckets to the entity ledger.
func (r CompTimeRequest) ToLedger() CompTimeLedger {
	return CompTimeLedger{
		RegularMinutes:        r.RegularMinutes,
		LegacyOvertimeMinutes: r.LegacyOvertimeMinutes,
		OvertimeBeforeMinutes: r.OvertimeBeforeMinutes,
		OvertimeAfterMinutes:  r.OvertimeAfterMinutes,
	}
}

func (r CompTimeRequest) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	for field, v := range map[string]int{
		"comp_time.regular_minutes":         r.RegularMinutes,
		"comp_time.legacy_overtime_minutes": r.LegacyOvertimeMinutes,
		"comp_time.overtime_before_minutes": r.OvertimeBeforeMinutes,
		"comp_time.overtime_after_minutes":  r.OvertimeAfterMinutes,
	} {
		if v < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "compensatory minutes must not be negative",
			})
		}
	}
	return errs
}

type CreateRequest struct {
	Date         string          `json:"date"`      // "2006-01-02"
	CheckIn      string          `json:"check_in"`  // RFC3339
	CheckOut     string          `json:"check_out"` // RFC3339
	BreakMinutes int             `json:"break_minutes"`
	ShiftCode    string          `json:"shift_code"`
	ShiftStart   *string         `json:"shift_start,omitempty"` // "15:04", wins over the catalog
	ShiftEnd     *string         `json:"shift_end,omitempty"`
	IsHoliday    bool            `json:"is_holiday"`
	HolidayType  string          `json:"holiday_type,omitempty"`
	CompTime     CompTimeRequest `json:"comp_time"`
	Signature    []byte          `json:"signature,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if _, ok := validator.IsValidDateTime(r.CheckIn); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in must be an RFC3339 timestamp",
		})
	}
	if _, ok := validator.IsValidDateTime(r.CheckOut); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out must be an RFC3339 timestamp",
		})
	}

	if r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must not be negative",
		})
	}

	if r.ShiftStart != nil && !validator.IsValidTimeOfDay(*r.ShiftStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_start",
			Message: "shift_start must be in HH:MM format",
		})
	}
	if r.ShiftEnd != nil && !validator.IsValidTimeOfDay(*r.ShiftEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_end",
			Message: "shift_end must be in HH:MM format",
		})
	}

	if _, err := ClassifyDayType(r.IsHoliday, r.HolidayType); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_type",
			Message: "holiday_type must be one of weekend, vietnamese_holiday, japanese_holiday",
		})
	}

	errs = r.CompTime.validate(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRequest edits an existing submission. Editing a rejected submission
// is the only path back to pending; a submission already escalated past the
// team leader cannot be edited without being rejected first.
type UpdateRequest struct {
	ID           string          `json:"-"`
	CheckIn      string          `json:"check_in"`
	CheckOut     string          `json:"check_out"`
	BreakMinutes int             `json:"break_minutes"`
	ShiftCode    string          `json:"shift_code"`
	ShiftStart   *string         `json:"shift_start,omitempty"`
	ShiftEnd     *string         `json:"shift_end,omitempty"`
	IsHoliday    bool            `json:"is_holiday"`
	HolidayType  string          `json:"holiday_type,omitempty"`
	CompTime     CompTimeRequest `json:"comp_time"`
	Signature    []byte          `json:"signature,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if _, ok := validator.IsValidDateTime(r.CheckIn); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in must be an RFC3339 timestamp",
		})
	}
	if _, ok := validator.IsValidDateTime(r.CheckOut); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out must be an RFC3339 timestamp",
		})
	}

	if r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must not be negative",
		})
	}

	if r.ShiftStart != nil && !validator.IsValidTimeOfDay(*r.ShiftStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_start",
			Message: "shift_start must be in HH:MM format",
		})
	}
	if r.ShiftEnd != nil && !validator.IsValidTimeOfDay(*r.ShiftEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_end",
			Message: "shift_end must be in HH:MM format",
		})
	}

	if _, err := ClassifyDayType(r.IsHoliday, r.HolidayType); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_type",
			Message: "holiday_type must be one of weekend, vietnamese_holiday, japanese_holiday",
		})
	}

	errs = r.CompTime.validate(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveRequest struct {
	ID        string `json:"-"`
	Signature []byte `json:"signature,omitempty"`
}

func (r *ApproveRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type SubmissionResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Department   string  `json:"department"`
	Date         string  `json:"date"`
	CheckIn      string  `json:"check_in"`
	CheckOut     string  `json:"check_out"`
	BreakMinutes int     `json:"break_minutes"`
	ShiftCode    string  `json:"shift_code"`
	IsHoliday    bool    `json:"is_holiday"`
	HolidayType  string  `json:"holiday_type,omitempty"`

	TotalWorkHours   string `json:"total_work_hours"`
	RegularWorkHours string `json:"regular_work_hours"`
	OvertimeBefore   string `json:"overtime_before_22"`
	OvertimeAfter    string `json:"overtime_after_22"`

	Status            ApprovalStatus `json:"status"`
	CurrentApproverID *string        `json:"current_approver_id,omitempty"`
	RejectionReason   *string        `json:"rejection_reason,omitempty"`
	Version           int            `json:"version"`
	CreatedAt         string         `json:"created_at"`
	UpdatedAt         string         `json:"updated_at"`
}

type ListFilter struct {
	EmployeeID *string
	Department *string
	Status     *ApprovalStatus
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}

type ListResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Submissions []SubmissionResponse `json:"submissions"`
}
