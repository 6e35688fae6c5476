package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/workforce-api/internal/models"
	"github.com/noah-isme/workforce-api/pkg/clock"
	appErrors "github.com/noah-isme/workforce-api/pkg/errors"
)

type calendarRepository interface {
	LoadDays(ctx context.Context) ([]models.CalendarDay, error)
	LoadWeeks(ctx context.Context) ([]models.Week, error)
}

// CalendarService is the single source of truth for working-day
// classification and day/week arithmetic. It serves lookups from an
// immutable in-memory snapshot of the seeded calendar tables, so it is safe
// for arbitrarily many concurrent readers without synchronization.
//
// Any date outside the seeded horizon is answered with
// ErrDateOutOfCalendar, never with a guessed classification: the calendar
// is authoritative reference data and a miss means it was provisioned
// short, which must surface rather than silently corrupt cost arithmetic.
type CalendarService struct {
	days        map[models.DateCode]models.CalendarDay
	codes       []models.DateCode
	index       map[models.DateCode]int
	weeks       []models.Week
	hoursPerDay int
	clock       clock.Clock
	logger      *zap.Logger
}

// NewCalendarService constructs the service. Call Load before serving.
func NewCalendarService(hoursPerDay int, clk clock.Clock, logger *zap.Logger) *CalendarService {
	if hoursPerDay <= 0 {
		hoursPerDay = 9
	}
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{
		days:        map[models.DateCode]models.CalendarDay{},
		index:       map[models.DateCode]int{},
		hoursPerDay: hoursPerDay,
		clock:       clk,
		logger:      logger,
	}
}

// Load snapshots the seeded calendar into memory.
func (s *CalendarService) Load(ctx context.Context, repo calendarRepository) error {
	days, err := repo.LoadDays(ctx)
	if err != nil {
		return err
	}
	if len(days) == 0 {
		return fmt.Errorf("calendar_days table is empty; calendar must be seeded before startup")
	}
	weeks, err := repo.LoadWeeks(ctx)
	if err != nil {
		return err
	}

	s.days = make(map[models.DateCode]models.CalendarDay, len(days))
	s.codes = make([]models.DateCode, 0, len(days))
	s.index = make(map[models.DateCode]int, len(days))
	for _, d := range days {
		s.days[d.Code] = d
		s.codes = append(s.codes, d.Code)
	}
	sort.Slice(s.codes, func(i, j int) bool { return s.codes[i] < s.codes[j] })
	for i, c := range s.codes {
		s.index[c] = i
	}

	s.weeks = append([]models.Week(nil), weeks...)
	sort.Slice(s.weeks, func(i, j int) bool { return s.weeks[i].StartCode < s.weeks[j].StartCode })

	s.logger.Info("calendar snapshot loaded",
		zap.Int("days", len(s.codes)),
		zap.Int("weeks", len(s.weeks)),
		zap.String("first", s.codes[0].String()),
		zap.String("last", s.codes[len(s.codes)-1].String()))
	return nil
}

// Day returns the seeded classification of a single day.
func (s *CalendarService) Day(code models.DateCode) (models.CalendarDay, error) {
	day, ok := s.days[code]
	if !ok {
		return models.CalendarDay{}, appErrors.Clone(appErrors.ErrDateOutOfCalendar,
			fmt.Sprintf("date %s outside the seeded calendar horizon", code))
	}
	return day, nil
}

// IsWorkingDay reports whether the day is a Monday-Friday non-holiday.
func (s *CalendarService) IsWorkingDay(code models.DateCode) (bool, error) {
	day, err := s.Day(code)
	if err != nil {
		return false, err
	}
	return day.IsWorkingDay(), nil
}

// AddWorkingDays returns the n-th working day counting from start
// inclusive: when start itself is a working day it counts as day 1.
// Defined only for n >= 1.
func (s *CalendarService) AddWorkingDays(start models.DateCode, n int) (models.DateCode, error) {
	if n < 1 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "working day offset must be at least 1")
	}
	pos, ok := s.index[start]
	if !ok {
		return 0, appErrors.Clone(appErrors.ErrDateOutOfCalendar,
			fmt.Sprintf("date %s outside the seeded calendar horizon", start))
	}
	count := 0
	for i := pos; i < len(s.codes); i++ {
		if s.days[s.codes[i]].IsWorkingDay() {
			count++
			if count == n {
				return s.codes[i], nil
			}
		}
	}
	return 0, appErrors.Clone(appErrors.ErrDateOutOfCalendar,
		fmt.Sprintf("fewer than %d working days remain in the seeded horizon after %s", n, start))
}

// DaysBetween returns every seeded day in [start, end] inclusive.
func (s *CalendarService) DaysBetween(start, end models.DateCode) ([]models.CalendarDay, error) {
	if end < start {
		return nil, appErrors.Clone(appErrors.ErrValidation, "range end precedes range start")
	}
	from, ok := s.index[start]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrDateOutOfCalendar,
			fmt.Sprintf("date %s outside the seeded calendar horizon", start))
	}
	to, ok := s.index[end]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrDateOutOfCalendar,
			fmt.Sprintf("date %s outside the seeded calendar horizon", end))
	}
	days := make([]models.CalendarDay, 0, to-from+1)
	for i := from; i <= to; i++ {
		days = append(days, s.days[s.codes[i]])
	}
	return days, nil
}

// WorkingDaysBetween returns the sorted working days in [start, end].
func (s *CalendarService) WorkingDaysBetween(start, end models.DateCode) ([]models.DateCode, error) {
	return s.daysBetweenFiltered(start, end, true)
}

// NonWorkingDaysBetween returns the sorted non-working days in [start, end].
// Together with WorkingDaysBetween it partitions the range exactly.
func (s *CalendarService) NonWorkingDaysBetween(start, end models.DateCode) ([]models.DateCode, error) {
	return s.daysBetweenFiltered(start, end, false)
}

func (s *CalendarService) daysBetweenFiltered(start, end models.DateCode, working bool) ([]models.DateCode, error) {
	days, err := s.DaysBetween(start, end)
	if err != nil {
		return nil, err
	}
	codes := make([]models.DateCode, 0, len(days))
	for _, d := range days {
		if d.IsWorkingDay() == working {
			codes = append(codes, d.Code)
		}
	}
	return codes, nil
}

// WeekContaining returns the seeded week whose bounds contain the day.
func (s *CalendarService) WeekContaining(code models.DateCode) (models.Week, error) {
	i := sort.Search(len(s.weeks), func(i int) bool { return s.weeks[i].EndCode >= code })
	if i < len(s.weeks) && s.weeks[i].Contains(code) {
		return s.weeks[i], nil
	}
	return models.Week{}, appErrors.Clone(appErrors.ErrDateOutOfCalendar,
		fmt.Sprintf("no seeded week contains %s", code))
}

// CurrentWeek resolves the week containing the injected clock's today.
func (s *CalendarService) CurrentWeek() (models.Week, error) {
	return s.WeekContaining(models.NewDateCode(s.clock.Now()))
}

// WorkingHours derives a week's capacity from its working day count.
func (s *CalendarService) WorkingHours(week models.Week) (int, error) {
	working, err := s.WorkingDaysBetween(week.StartCode, week.EndCode)
	if err != nil {
		return 0, err
	}
	return len(working) * s.hoursPerDay, nil
}

// Horizon reports the inclusive bounds of the seeded calendar.
func (s *CalendarService) Horizon() (models.DateCode, models.DateCode, bool) {
	if len(s.codes) == 0 {
		return 0, 0, false
	}
	return s.codes[0], s.codes[len(s.codes)-1], true
}
