package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/workforce-api/internal/dto"
	"github.com/noah-isme/workforce-api/internal/models"
	appErrors "github.com/noah-isme/workforce-api/pkg/errors"
)

type costPeriodRepository interface {
	ListBySubject(ctx context.Context, employeeID string, series models.CostSeries) ([]models.CostPeriod, error)
	ReplaceSet(ctx context.Context, employeeID string, series models.CostSeries, periods []models.CostPeriod) error
}

type employeeReader interface {
	GetByID(ctx context.Context, id string) (*models.Employee, error)
}

// CostPeriodService guards the cost-period write path: the consistency
// check must pass before the diff-and-replace persistence runs, and the
// persistence is all-or-nothing.
type CostPeriodService struct {
	repo      costPeriodRepository
	employees employeeReader
	cache     *CacheService
	logger    *zap.Logger
}

// NewCostPeriodService constructs the service.
func NewCostPeriodService(repo costPeriodRepository, employees employeeReader, cache *CacheService, logger *zap.Logger) *CostPeriodService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CostPeriodService{repo: repo, employees: employees, cache: cache, logger: logger}
}

// List returns an employee's stored cost periods for one series.
func (s *CostPeriodService) List(ctx context.Context, employeeID string, series models.CostSeries) ([]models.CostPeriod, error) {
	if !series.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown cost series %q", series))
	}
	periods, err := s.repo.ListBySubject(ctx, employeeID, series)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list cost periods")
	}
	return periods, nil
}

// Replace validates and persists the full desired period set for one
// employee and series. A failed transaction surfaces as a single error and
// leaves the stored set untouched.
func (s *CostPeriodService) Replace(ctx context.Context, employeeID string, series models.CostSeries, req dto.ReplaceCostPeriodsRequest) ([]models.CostPeriod, error) {
	if !series.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown cost series %q", series))
	}

	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}

	periods, ranges, err := parseCostPeriods(req.Periods)
	if err != nil {
		return nil, err
	}

	if err := ValidateCostRanges(ranges, series); err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceSet(ctx, employeeID, series, periods); err != nil {
		// Nothing was committed; tell the caller exactly that.
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "cost periods unchanged: replace failed")
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, fmt.Sprintf("staffing:%s:*", employeeID))
	}

	stored, err := s.repo.ListBySubject(ctx, employeeID, series)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload cost periods")
	}
	s.logger.Info("cost periods replaced",
		zap.String("employee_id", employeeID),
		zap.String("series", string(series)),
		zap.Int("count", len(stored)))
	return stored, nil
}

func parseCostPeriods(inputs []dto.CostPeriodInput) ([]models.CostPeriod, []models.DateRange, error) {
	periods := make([]models.CostPeriod, 0, len(inputs))
	ranges := make([]models.DateRange, 0, len(inputs))
	for i, in := range inputs {
		start, err := models.ParseDateCode(in.Start)
		if err != nil {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("period %d: invalid start date, expected YYYY-MM-DD", i+1))
		}
		var endCode *models.DateCode
		end := models.OpenEnd()
		if in.End != nil && *in.End != "" {
			parsed, err := models.ParseDateCode(*in.End)
			if err != nil {
				return nil, nil, appErrors.Clone(appErrors.ErrValidation,
					fmt.Sprintf("period %d: invalid end date, expected YYYY-MM-DD", i+1))
			}
			endCode = &parsed
			end = models.ClosedEnd(parsed)
		}
		rate, err := decimal.NewFromString(in.DailyRate)
		if err != nil || rate.IsNegative() {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("period %d: daily rate must be a non-negative decimal", i+1))
		}
		periods = append(periods, models.CostPeriod{
			ID:        in.ID,
			StartCode: start,
			EndCode:   endCode,
			DailyRate: rate,
		})
		ranges = append(ranges, models.DateRange{Start: start, End: end})
	}
	return periods, ranges, nil
}
