package postgresql

import (
	"context"
	"fmt"

	"github.com/hanoisoft/timesheet-backend-go/internal/domain/timesheet"
	"github.com/hanoisoft/timesheet-backend-go/internal/pkg/database"
)

// auditRepository appends workflow transitions to audit_trails. The table is
// insert-only; there is deliberately no update or delete here.
type auditRepository struct {
	db *database.DB
}

// Record implements timesheet.AuditRecorder.
func (r *auditRepository) Record(ctx context.Context, event timesheet.TransitionEvent) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO audit_trails (
			submission_id, employee_id, from_status, to_status,
			actor_id, reason, occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		event.SubmissionID,
		event.EmployeeID,
		event.From,
		event.To,
		event.ActorID,
		event.Reason,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record audit trail: %w", err)
	}

	return nil
}

func NewAuditRecorder(db *database.DB) timesheet.AuditRecorder {
	return &auditRepository{db: db}
}
