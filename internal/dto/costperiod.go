package dto

// CostPeriodInput is one desired cost period in a replace request. End is
// omitted for the ongoing period.
type CostPeriodInput struct {
	ID        string  `json:"id,omitempty"`
	Start     string  `json:"start" validate:"required"`
	End       *string `json:"end,omitempty"`
	DailyRate string  `json:"daily_rate" validate:"required"`
}

// ReplaceCostPeriodsRequest carries the full desired period set for one
// employee and series. Persisting it is diff-and-replace: rows absent from
// this set are deleted.
type ReplaceCostPeriodsRequest struct {
	Periods []CostPeriodInput `json:"periods"`
}
