package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Assignment allocates a percentage of an employee to a project over a span
// of days. Assignments of one employee may overlap; the overlap is an
// over-allocation signal surfaced by the staffing views, not an error.
type Assignment struct {
	ID          string          `db:"id" json:"id"`
	EmployeeID  string          `db:"employee_id" json:"employee_id"`
	ProjectID   string          `db:"project_id" json:"project_id"`
	ProjectName string          `db:"project_name" json:"project_name"`
	StartCode   DateCode        `db:"start_code" json:"start_code"`
	EndCode     *DateCode       `db:"end_code" json:"end_code,omitempty"`
	Percentage  float64         `db:"percentage" json:"percentage"`
	Hours       decimal.Decimal `db:"hours" json:"hours"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// CoversDay reports whether the assignment applies on the given day. An
// assignment without an end is ongoing and covers every day from its start.
func (a Assignment) CoversDay(c DateCode) bool {
	if c < a.StartCode {
		return false
	}
	return a.EndCode == nil || c <= *a.EndCode
}
