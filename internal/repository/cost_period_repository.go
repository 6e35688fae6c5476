package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/workforce-api/internal/models"
)

// CostPeriodRepository persists cost period sets per employee and series.
type CostPeriodRepository struct {
	db *sqlx.DB
}

// NewCostPeriodRepository constructs the repository.
func NewCostPeriodRepository(db *sqlx.DB) *CostPeriodRepository {
	return &CostPeriodRepository{db: db}
}

// ListBySubject returns one employee's periods for a series ordered by start.
func (r *CostPeriodRepository) ListBySubject(ctx context.Context, employeeID string, series models.CostSeries) ([]models.CostPeriod, error) {
	const query = `SELECT id, employee_id, series, start_code, end_code, daily_rate, created_at, updated_at
FROM cost_periods WHERE employee_id = $1 AND series = $2 ORDER BY start_code ASC`
	var periods []models.CostPeriod
	if err := r.db.SelectContext(ctx, &periods, query, employeeID, series); err != nil {
		return nil, fmt.Errorf("list cost periods: %w", err)
	}
	return periods, nil
}

// ReplaceSet reconciles the stored periods with the desired set inside one
// transaction: rows absent from the new set are deleted, the rest upserted.
// Partial application would leave a subject's cost history inconsistent, so
// any failure rolls everything back.
func (r *CostPeriodRepository) ReplaceSet(ctx context.Context, employeeID string, series models.CostSeries, periods []models.CostPeriod) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace cost periods: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			tx.Rollback()
		}
	}()

	var existingIDs []string
	if err := tx.SelectContext(ctx, &existingIDs,
		`SELECT id FROM cost_periods WHERE employee_id = $1 AND series = $2`, employeeID, series); err != nil {
		return fmt.Errorf("load existing cost periods: %w", err)
	}

	now := time.Now().UTC()
	desired := make(map[string]struct{}, len(periods))
	for i := range periods {
		p := &periods[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.EmployeeID = employeeID
		p.Series = series
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		desired[p.ID] = struct{}{}
	}

	toDelete := make([]string, 0, len(existingIDs))
	for _, id := range existingIDs {
		if _, keep := desired[id]; !keep {
			toDelete = append(toDelete, id)
		}
	}
	if len(toDelete) > 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM cost_periods WHERE id = ANY($1)`, pq.Array(toDelete)); err != nil {
			return fmt.Errorf("delete absent cost periods: %w", err)
		}
	}

	const upsert = `INSERT INTO cost_periods (id, employee_id, series, start_code, end_code, daily_rate, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id)
DO UPDATE SET start_code = EXCLUDED.start_code, end_code = EXCLUDED.end_code, daily_rate = EXCLUDED.daily_rate, updated_at = EXCLUDED.updated_at`
	for i := range periods {
		p := periods[i]
		if _, err := tx.ExecContext(ctx, upsert,
			p.ID, p.EmployeeID, p.Series, p.StartCode, p.EndCode, p.DailyRate, p.CreatedAt, p.UpdatedAt); err != nil {
			return fmt.Errorf("upsert cost period %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace cost periods: %w", err)
	}
	commit = true
	return nil
}
