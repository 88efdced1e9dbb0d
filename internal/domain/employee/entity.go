package employee

import (
	"strings"
	"time"
)

type Role string

const (
	RoleEmployee   Role = "EMPLOYEE"    // Submits own timesheets
	RoleTeamLeader Role = "TEAM_LEADER" // First approval step, own department only
	RoleManager    Role = "MANAGER"     // Second approval step, any department
	RoleAdmin      Role = "ADMIN"       // Final approval step
)

// MaternityFlex is the per-employee opt-in for the maternity working-time
// accommodation. The bonus applies only to work days inside [From, Until).
type MaternityFlex struct {
	Enabled bool
	From    *time.Time
	Until   *time.Time
}

type Employee struct {
	ID            string
	FullName      string
	Department    string
	Roles         []Role
	MaternityFlex MaternityFlex
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NormalizeDepartment canonicalizes a department key. Department values
// arrive with inconsistent case and surrounding whitespace, so every
// comparison goes through this instead of comparing raw strings.
func NormalizeDepartment(department string) string {
	return strings.ToUpper(strings.TrimSpace(department))
}

// HasRole checks whether the employee holds the given role.
func (e *Employee) HasRole(role Role) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsApprover checks whether the employee holds any reviewing role.
func (e *Employee) IsApprover() bool {
	return e.HasRole(RoleTeamLeader) || e.HasRole(RoleManager) || e.HasRole(RoleAdmin)
}

// MaternityFlexOn reports whether the maternity accommodation is active for
// the employee on the given work day.
func (e *Employee) MaternityFlexOn(date time.Time) bool {
	mf := e.MaternityFlex
	if !mf.Enabled {
		return false
	}
	if mf.From != nil && date.Before(*mf.From) {
		return false
	}
	if mf.Until != nil && !date.Before(*mf.Until) {
		return false
	}
	return true
}
