package postgresql

import (
	"context"
	"fmt"

	"github.com/hanoisoft/timesheet-backend-go/internal/domain/employee"
	"github.com/hanoisoft/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, department, roles,
			   maternity_flex_enabled, maternity_flex_from, maternity_flex_until,
			   created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var e employee.Employee
	var roles []string
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.FullName, &e.Department, &roles,
		&e.MaternityFlex.Enabled, &e.MaternityFlex.From, &e.MaternityFlex.Until,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	e.Roles = make([]employee.Role, 0, len(roles))
	for _, role := range roles {
		e.Roles = append(e.Roles, employee.Role(role))
	}

	return e, nil
}

// FindApprover implements employee.EmployeeRepository. Team leaders are
// scoped to their own department; managers and admins approve across the
// whole company, so the department predicate only applies to the first step.
func (r *employeeRepository) FindApprover(ctx context.Context, department string, role employee.Role) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id
		FROM employees
		WHERE $1 = ANY(roles)
	`
	args := []interface{}{string(role)}

	if role == employee.RoleTeamLeader {
		query += " AND UPPER(TRIM(department)) = $2"
		args = append(args, employee.NormalizeDepartment(department))
	}
	query += " ORDER BY created_at ASC LIMIT 1"

	var id string
	err := q.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", employee.ErrApproverNotFound
		}
		return "", fmt.Errorf("failed to find approver: %w", err)
	}

	return id, nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}
