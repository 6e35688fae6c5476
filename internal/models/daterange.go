package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// maxDateCode orders open-ended ranges after every bounded one. It is a
// sentinel for comparisons only and never appears in persisted data.
const maxDateCode DateCode = 99991231

// RangeEnd is the tagged upper bound of a DateRange: either a concrete day
// or open ("ongoing", no upper bound yet).
type RangeEnd struct {
	Code DateCode
	Open bool
}

// ClosedEnd bounds a range at the given day (inclusive).
func ClosedEnd(c DateCode) RangeEnd {
	return RangeEnd{Code: c}
}

// OpenEnd marks a range as ongoing.
func OpenEnd() RangeEnd {
	return RangeEnd{Open: true}
}

// Bound returns the effective upper bound for ordering and overlap
// comparisons; open ends sort after every concrete day.
func (e RangeEnd) Bound() DateCode {
	if e.Open {
		return maxDateCode
	}
	return e.Code
}

// DateRange is an inclusive span of calendar days belonging to one subject
// and one series.
type DateRange struct {
	Start DateCode
	End   RangeEnd
}

// Inverted reports a closed range whose end precedes its start. A single-day
// range (start == end) is valid.
func (r DateRange) Inverted() bool {
	return !r.End.Open && r.End.Code < r.Start
}

// Contains reports whether the day falls inside the range.
func (r DateRange) Contains(c DateCode) bool {
	return c >= r.Start && c <= r.End.Bound()
}

// Overlaps reports whether two ranges share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	start := r.Start
	if other.Start > start {
		start = other.Start
	}
	end := r.End.Bound()
	if b := other.End.Bound(); b < end {
		end = b
	}
	return start <= end
}

// CostSeries identifies which cost history a period belongs to.
type CostSeries string

const (
	// CostSeriesInternal periods must cover the whole history without gaps.
	CostSeriesInternal CostSeries = "INTERNAL"
	// CostSeriesExternal periods may leave gaps but must not overlap.
	CostSeriesExternal CostSeries = "EXTERNAL"
)

// Valid returns true when the series is a supported value.
func (s CostSeries) Valid() bool {
	return s == CostSeriesInternal || s == CostSeriesExternal
}

// RequiresContinuity reports whether the series demands gap-free coverage.
func (s CostSeries) RequiresContinuity() bool {
	return s == CostSeriesInternal
}

// CostPeriod is a persisted cost record span for one employee.
type CostPeriod struct {
	ID         string          `db:"id" json:"id"`
	EmployeeID string          `db:"employee_id" json:"employee_id"`
	Series     CostSeries      `db:"series" json:"series"`
	StartCode  DateCode        `db:"start_code" json:"start_code"`
	EndCode    *DateCode       `db:"end_code" json:"end_code,omitempty"`
	DailyRate  decimal.Decimal `db:"daily_rate" json:"daily_rate"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// Range maps the persisted row onto the interval value type used by the
// consistency checks.
func (p CostPeriod) Range() DateRange {
	if p.EndCode == nil {
		return DateRange{Start: p.StartCode, End: OpenEnd()}
	}
	return DateRange{Start: p.StartCode, End: ClosedEnd(*p.EndCode)}
}
