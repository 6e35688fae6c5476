package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/workforce-api/internal/models"
)

// AssignmentRepository reads project assignments. Assignments are created
// and edited by the project staffing screens; the staffing views consume
// them read-only.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

const assignmentColumns = `id, employee_id, project_id, project_name, start_code, end_code, percentage, hours, created_at, updated_at`

// ListByEmployee returns all assignments for one employee ordered by start.
func (r *AssignmentRepository) ListByEmployee(ctx context.Context, employeeID string) ([]models.Assignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM assignments WHERE employee_id = $1 ORDER BY start_code ASC`, assignmentColumns)
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, employeeID); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// ListOverlapping returns assignments touching the [from, to] window.
// Open-ended assignments match whenever they start on or before the window
// end.
func (r *AssignmentRepository) ListOverlapping(ctx context.Context, employeeID string, from, to models.DateCode) ([]models.Assignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM assignments
WHERE employee_id = $1 AND start_code <= $3 AND (end_code IS NULL OR end_code >= $2)
ORDER BY start_code ASC`, assignmentColumns)
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, employeeID, from, to); err != nil {
		return nil, fmt.Errorf("list overlapping assignments: %w", err)
	}
	return assignments, nil
}
