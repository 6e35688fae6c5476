package models

import (
	"fmt"
	"time"
)

// DateCode encodes a timezone-less calendar day as YYYYMMDD. The integer
// form is what the calendar tables are keyed on and what crosses the wire;
// ordering and equality on the code match chronological ordering.
type DateCode int

const dateLayout = "2006-01-02"

// NewDateCode derives the code for the calendar day containing t.
func NewDateCode(t time.Time) DateCode {
	return DateCode(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

// ParseDateCode parses the YYYY-MM-DD text form. Both representations are
// lossless over the supported horizon.
func ParseDateCode(raw string) (DateCode, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return NewDateCode(t), nil
}

// Time returns the day at UTC midnight.
func (c DateCode) Time() time.Time {
	return time.Date(c.Year(), time.Month(c.Month()), c.Day(), 0, 0, 0, 0, time.UTC)
}

// Year, Month and Day unpack the code.
func (c DateCode) Year() int  { return int(c) / 10000 }
func (c DateCode) Month() int { return (int(c) / 100) % 100 }
func (c DateCode) Day() int   { return int(c) % 100 }

// Valid reports whether the code denotes a real calendar day.
func (c DateCode) Valid() bool {
	return c > 0 && NewDateCode(c.Time()) == c
}

// Weekday returns the weekday of the encoded day.
func (c DateCode) Weekday() time.Weekday {
	return c.Time().Weekday()
}

// Next returns the immediately following calendar day.
func (c DateCode) Next() DateCode {
	return NewDateCode(c.Time().AddDate(0, 0, 1))
}

// String renders the YYYY-MM-DD text form.
func (c DateCode) String() string {
	return c.Time().Format(dateLayout)
}

// CalendarDay is one row of the externally seeded business calendar.
// The calendar is read-only reference data for this service.
type CalendarDay struct {
	Code        DateCode `db:"date_code" json:"date_code"`
	IsHoliday   bool     `db:"is_holiday" json:"is_holiday"`
	HolidayName *string  `db:"holiday_name" json:"holiday_name,omitempty"`
}

// Weekday derives the weekday from the day's date code.
func (d CalendarDay) Weekday() time.Weekday {
	return d.Code.Weekday()
}

// IsWorkingDay reports whether the day is a Monday-Friday non-holiday.
func (d CalendarDay) IsWorkingDay() bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday && !d.IsHoliday
}

// Week is a seeded reporting week with inclusive day bounds. Weeks are
// contiguous and non-overlapping across the seeded horizon.
type Week struct {
	Code      int      `db:"code" json:"code"`
	StartCode DateCode `db:"start_code" json:"start_code"`
	EndCode   DateCode `db:"end_code" json:"end_code"`
}

// Contains reports whether the day falls within the week bounds.
func (w Week) Contains(c DateCode) bool {
	return c >= w.StartCode && c <= w.EndCode
}
