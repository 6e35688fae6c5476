package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/workforce-api/internal/models"
	"github.com/noah-isme/workforce-api/pkg/clock"
	appErrors "github.com/noah-isme/workforce-api/pkg/errors"
)

type mockCalendarRepo struct {
	days  []models.CalendarDay
	weeks []models.Week
	err   error
}

func (m *mockCalendarRepo) LoadDays(ctx context.Context) ([]models.CalendarDay, error) {
	return m.days, m.err
}

func (m *mockCalendarRepo) LoadWeeks(ctx context.Context) ([]models.Week, error) {
	return m.weeks, m.err
}

// januaryCalendar seeds January 2024. New Year's Day (Monday 2024-01-01) is
// a holiday; weeks run Monday through Sunday.
func januaryCalendar(t *testing.T) *CalendarService {
	t.Helper()

	repo := &mockCalendarRepo{}
	holiday := "New Year's Day"
	start, err := models.ParseDateCode("2024-01-01")
	require.NoError(t, err)
	for code := start; code <= 20240131; code = code.Next() {
		day := models.CalendarDay{Code: code}
		if code == 20240101 {
			day.IsHoliday = true
			day.HolidayName = &holiday
		}
		repo.days = append(repo.days, day)
	}
	repo.weeks = []models.Week{
		{Code: 202401, StartCode: 20240101, EndCode: 20240107},
		{Code: 202402, StartCode: 20240108, EndCode: 20240114},
		{Code: 202403, StartCode: 20240115, EndCode: 20240121},
		{Code: 202404, StartCode: 20240122, EndCode: 20240128},
	}

	svc := NewCalendarService(9, clock.At(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)), zap.NewNop())
	require.NoError(t, svc.Load(context.Background(), repo))
	return svc
}

func TestCalendarServiceLoadRequiresSeededDays(t *testing.T) {
	svc := NewCalendarService(9, nil, zap.NewNop())
	err := svc.Load(context.Background(), &mockCalendarRepo{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seeded")
}

func TestCalendarServiceDayClassification(t *testing.T) {
	svc := januaryCalendar(t)

	holiday, err := svc.Day(20240101)
	require.NoError(t, err)
	assert.True(t, holiday.IsHoliday)
	assert.False(t, holiday.IsWorkingDay())

	working, err := svc.IsWorkingDay(20240102)
	require.NoError(t, err)
	assert.True(t, working)

	saturday, err := svc.IsWorkingDay(20240106)
	require.NoError(t, err)
	assert.False(t, saturday)
}

func TestCalendarServiceDayOutsideHorizon(t *testing.T) {
	svc := januaryCalendar(t)

	_, err := svc.Day(20240201)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDateOutOfCalendar))

	_, err = svc.IsWorkingDay(20231231)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDateOutOfCalendar))
}

func TestCalendarServiceAddWorkingDays(t *testing.T) {
	svc := januaryCalendar(t)

	// Starting on a working day, day 1 is the start itself.
	date, err := svc.AddWorkingDays(20240102, 1)
	require.NoError(t, err)
	assert.Equal(t, models.DateCode(20240102), date)

	// Starting on the holiday Monday, day 1 is Tuesday.
	date, err = svc.AddWorkingDays(20240101, 1)
	require.NoError(t, err)
	assert.Equal(t, models.DateCode(20240102), date)

	// Five working days from Tuesday 2024-01-02 lands on Monday 2024-01-08,
	// skipping the weekend.
	date, err = svc.AddWorkingDays(20240102, 5)
	require.NoError(t, err)
	assert.Equal(t, models.DateCode(20240108), date)

	_, err = svc.AddWorkingDays(20240102, 0)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	// More working days than remain in the horizon.
	_, err = svc.AddWorkingDays(20240129, 10)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDateOutOfCalendar))
}

func TestCalendarServiceAddWorkingDaysMatchesWorkingDaysBetween(t *testing.T) {
	svc := januaryCalendar(t)

	// Walking n working days forward and counting working days over the
	// resulting span agree with each other.
	for n := 1; n <= 10; n++ {
		date, err := svc.AddWorkingDays(20240101, n)
		require.NoError(t, err)
		working, err := svc.WorkingDaysBetween(20240101, date)
		require.NoError(t, err)
		assert.Len(t, working, n, "n=%d", n)
		assert.Equal(t, date, working[len(working)-1])
	}
}

func TestCalendarServiceWorkingDaysPartitionRange(t *testing.T) {
	svc := januaryCalendar(t)

	working, err := svc.WorkingDaysBetween(20240101, 20240131)
	require.NoError(t, err)
	nonWorking, err := svc.NonWorkingDaysBetween(20240101, 20240131)
	require.NoError(t, err)

	// 31 days: 23 weekdays, one of them a holiday.
	assert.Len(t, working, 22)
	assert.Len(t, nonWorking, 9)

	seen := map[models.DateCode]struct{}{}
	for _, c := range append(append([]models.DateCode{}, working...), nonWorking...) {
		_, dup := seen[c]
		assert.False(t, dup, "day %s assigned twice", c)
		seen[c] = struct{}{}
	}
	assert.Len(t, seen, 31)
}

func TestCalendarServiceDaysBetweenValidation(t *testing.T) {
	svc := januaryCalendar(t)

	_, err := svc.DaysBetween(20240110, 20240105)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	_, err = svc.DaysBetween(20240115, 20240215)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDateOutOfCalendar))
}

func TestCalendarServiceWeeks(t *testing.T) {
	svc := januaryCalendar(t)

	week, err := svc.WeekContaining(20240110)
	require.NoError(t, err)
	assert.Equal(t, 202402, week.Code)

	// The injected clock pins today to 2024-01-10.
	current, err := svc.CurrentWeek()
	require.NoError(t, err)
	assert.Equal(t, week, current)

	_, err = svc.WeekContaining(20240131)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDateOutOfCalendar))
}

func TestCalendarServiceWorkingHours(t *testing.T) {
	svc := januaryCalendar(t)

	// Holiday week: four working days at nine hours.
	holidayWeek, err := svc.WeekContaining(20240101)
	require.NoError(t, err)
	hours, err := svc.WorkingHours(holidayWeek)
	require.NoError(t, err)
	assert.Equal(t, 36, hours)

	// Regular week: five working days.
	regularWeek, err := svc.WeekContaining(20240110)
	require.NoError(t, err)
	hours, err = svc.WorkingHours(regularWeek)
	require.NoError(t, err)
	assert.Equal(t, 45, hours)
}

func TestCalendarServiceHorizon(t *testing.T) {
	svc := januaryCalendar(t)
	first, last, ok := svc.Horizon()
	assert.True(t, ok)
	assert.Equal(t, models.DateCode(20240101), first)
	assert.Equal(t, models.DateCode(20240131), last)

	empty := NewCalendarService(9, nil, zap.NewNop())
	_, _, ok = empty.Horizon()
	assert.False(t, ok)
}
