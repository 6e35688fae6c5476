package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/workforce-api/internal/dto"
	"github.com/noah-isme/workforce-api/internal/models"
	appErrors "github.com/noah-isme/workforce-api/pkg/errors"
	"github.com/noah-isme/workforce-api/pkg/export"
)

type assignmentReader interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]models.Assignment, error)
	ListOverlapping(ctx context.Context, employeeID string, from, to models.DateCode) ([]models.Assignment, error)
}

type staffingCalendar interface {
	DaysBetween(start, end models.DateCode) ([]models.CalendarDay, error)
}

// OccupancyService turns assignment records into staffing read models:
// Gantt bars for timelines and day-indexed occupancy/availability series
// for heatmaps. It is a pure read path over already-validated data.
type OccupancyService struct {
	assignments assignmentReader
	calendar    staffingCalendar
	cache       *CacheService
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
	logger      *zap.Logger
}

// NewOccupancyService constructs the service.
func NewOccupancyService(assignments assignmentReader, calendar staffingCalendar, cache *CacheService, logger *zap.Logger) *OccupancyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OccupancyService{
		assignments: assignments,
		calendar:    calendar,
		cache:       cache,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		logger:      logger,
	}
}

// Bars projects every assignment of an employee into a timeline bar. Bars
// carry the assignment's absolute dates untouched; an assignment with no
// end yields an open-ended bar.
func (s *OccupancyService) Bars(ctx context.Context, employeeID string) ([]dto.GanttBar, error) {
	assignments, err := s.assignments.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	bars := make([]dto.GanttBar, 0, len(assignments))
	for _, a := range assignments {
		label := a.ProjectName
		if label == "" {
			label = a.ProjectID
		}
		bar := dto.GanttBar{
			AssignmentID: a.ID,
			Label:        label,
			Start:        a.StartCode.String(),
			Percentage:   a.Percentage,
		}
		if a.EndCode != nil {
			end := a.EndCode.String()
			bar.End = &end
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

// Occupancy sums assignment percentages per working day across the window.
// Totals above 100 are preserved: over-allocation is a signal the UI
// highlights, not an error. Non-working days are emitted flagged so the UI
// can black them out.
func (s *OccupancyService) Occupancy(ctx context.Context, employeeID string, from, to models.DateCode) (*dto.OccupancySeries, error) {
	key := fmt.Sprintf("staffing:%s:occupancy:%d:%d", employeeID, from, to)
	cached := &dto.OccupancySeries{}
	if hit, _ := s.cache.Get(ctx, key, cached); hit {
		return cached, nil
	}

	series, err := s.buildSeries(ctx, employeeID, from, to, occupancyValue)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, series)
	return series, nil
}

// Availability is the clamped remainder of capacity: max(0, 100 - occupancy)
// per working day. A person over-allocated beyond 100% has zero remaining
// availability, never a negative one.
func (s *OccupancyService) Availability(ctx context.Context, employeeID string, from, to models.DateCode) (*dto.OccupancySeries, error) {
	key := fmt.Sprintf("staffing:%s:availability:%d:%d", employeeID, from, to)
	cached := &dto.OccupancySeries{}
	if hit, _ := s.cache.Get(ctx, key, cached); hit {
		return cached, nil
	}

	series, err := s.buildSeries(ctx, employeeID, from, to, availabilityValue)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, series)
	return series, nil
}

func occupancyValue(total float64) float64 {
	return total
}

func availabilityValue(total float64) float64 {
	remaining := 100 - total
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *OccupancyService) buildSeries(ctx context.Context, employeeID string, from, to models.DateCode, value func(float64) float64) (*dto.OccupancySeries, error) {
	days, err := s.calendar.DaysBetween(from, to)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignments.ListOverlapping(ctx, employeeID, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}

	series := &dto.OccupancySeries{
		EmployeeID: employeeID,
		From:       from.String(),
		To:         to.String(),
		Days:       make([]dto.OccupancyDay, 0, len(days)),
	}
	for _, d := range days {
		day := dto.OccupancyDay{
			Date:    d.Code.String(),
			Code:    int(d.Code),
			Working: d.IsWorkingDay(),
		}
		if day.Working {
			var total float64
			for _, a := range assignments {
				if a.CoversDay(d.Code) {
					total += a.Percentage
				}
			}
			day.Percentage = value(total)
		}
		series.Days = append(series.Days, day)
	}
	return series, nil
}

// ExportOccupancy renders an employee's occupancy series as CSV or PDF for
// offline staffing reviews.
func (s *OccupancyService) ExportOccupancy(ctx context.Context, employeeID string, from, to models.DateCode, format string) ([]byte, string, error) {
	series, err := s.Occupancy(ctx, employeeID, from, to)
	if err != nil {
		return nil, "", err
	}

	data := export.Dataset{
		Headers: []string{"Date", "Weekday", "Working", "Occupancy %"},
		Rows:    make([]map[string]string, 0, len(series.Days)),
	}
	for _, day := range series.Days {
		code := models.DateCode(day.Code)
		row := map[string]string{
			"Date":    day.Date,
			"Weekday": code.Weekday().String(),
		}
		if day.Working {
			row["Working"] = "yes"
			row["Occupancy %"] = strconv.FormatFloat(day.Percentage, 'f', -1, 64)
		} else {
			row["Working"] = "no"
			row["Occupancy %"] = ""
		}
		data.Rows = append(data.Rows, row)
	}

	switch format {
	case "csv":
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, fmt.Sprintf("occupancy_%s_%s_%s.csv", employeeID, series.From, series.To), nil
	case "pdf":
		title := fmt.Sprintf("Occupancy %s - %s", series.From, series.To)
		payload, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, fmt.Sprintf("occupancy_%s_%s_%s.pdf", employeeID, series.From, series.To), nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
