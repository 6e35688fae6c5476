package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/workforce-api/internal/models"
)

// CalendarRepository reads the externally seeded business calendar. The
// tables are reference data maintained by a provisioning job; this service
// never writes them.
type CalendarRepository struct {
	db *sqlx.DB
}

// NewCalendarRepository constructs a calendar repository.
func NewCalendarRepository(db *sqlx.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

// LoadDays returns every seeded calendar day ordered by date code.
func (r *CalendarRepository) LoadDays(ctx context.Context) ([]models.CalendarDay, error) {
	const query = `SELECT date_code, is_holiday, holiday_name FROM calendar_days ORDER BY date_code ASC`
	var days []models.CalendarDay
	if err := r.db.SelectContext(ctx, &days, query); err != nil {
		return nil, fmt.Errorf("load calendar days: %w", err)
	}
	return days, nil
}

// LoadWeeks returns every seeded week ordered by start date.
func (r *CalendarRepository) LoadWeeks(ctx context.Context) ([]models.Week, error) {
	const query = `SELECT code, start_code, end_code FROM calendar_weeks ORDER BY start_code ASC`
	var weeks []models.Week
	if err := r.db.SelectContext(ctx, &weeks, query); err != nil {
		return nil, fmt.Errorf("load calendar weeks: %w", err)
	}
	return weeks, nil
}
