package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// FindApprover resolves the escalation chain: the one employee holding
	// role within department (normalized). Returns ErrApproverNotFound when
	// the department has nobody with that role.
	FindApprover(ctx context.Context, department string, role Role) (string, error)
}
