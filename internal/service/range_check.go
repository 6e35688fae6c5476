package service

import (
	"fmt"
	"sort"

	"github.com/noah-isme/workforce-api/internal/models"
	appErrors "github.com/noah-isme/workforce-api/pkg/errors"
)

// ValidateCostRanges decides whether one subject's full period set for a
// series is consistent enough to persist. External cost periods may leave
// gaps but must not overlap; internal cost periods describe the entire cost
// history and must be gap-free as well. The check runs before any write and
// a rejection blocks the whole replace.
//
// Open ends are ordered as the maximum representable day for comparison
// purposes only; at most one period may be open-ended, and sorting
// guarantees a misplaced open end trips the overlap check.
func ValidateCostRanges(ranges []models.DateRange, series models.CostSeries) error {
	for _, r := range ranges {
		if r.Inverted() {
			return appErrors.Clone(appErrors.ErrRangeInverted,
				fmt.Sprintf("period starting %s ends before it starts", r.Start))
		}
	}

	open := 0
	for _, r := range ranges {
		if r.End.Open {
			open++
		}
	}
	if open > 1 {
		return appErrors.Clone(appErrors.ErrMultipleOpenEnds, "")
	}

	if len(ranges) < 2 {
		return nil
	}

	sorted := append([]models.DateRange(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End.Bound() < sorted[j].End.Bound()
	})

	for i := 0; i < len(sorted)-1; i++ {
		prev, next := sorted[i], sorted[i+1]
		if prev.End.Bound() >= next.Start {
			return appErrors.Clone(appErrors.ErrRangeOverlap,
				fmt.Sprintf("period starting %s overlaps period starting %s", prev.Start, next.Start))
		}
		if series.RequiresContinuity() && prev.End.Code.Next() != next.Start {
			return appErrors.Clone(appErrors.ErrRangeGap,
				fmt.Sprintf("gap between %s and %s", prev.End.Code, next.Start))
		}
	}

	return nil
}
