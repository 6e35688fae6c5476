package dto

// GanttBar is one timeline bar per assignment. Bars render in absolute
// calendar time, including non-working days: they represent a staffing
// commitment, not daily presence.
type GanttBar struct {
	AssignmentID string  `json:"assignment_id"`
	Label        string  `json:"label"`
	Start        string  `json:"start"`
	End          *string `json:"end,omitempty"`
	Percentage   float64 `json:"percentage"`
}

// OccupancyDay is one day of a heatmap series. Non-working days are flagged
// rather than dropped so the UI can black them out instead of rendering a
// zero-occupancy workday.
type OccupancyDay struct {
	Date       string  `json:"date"`
	Code       int     `json:"code"`
	Working    bool    `json:"working"`
	Percentage float64 `json:"percentage"`
}

// OccupancySeries is a day-indexed staffing signal over a query window.
type OccupancySeries struct {
	EmployeeID string         `json:"employee_id"`
	From       string         `json:"from"`
	To         string         `json:"to"`
	Days       []OccupancyDay `json:"days"`
}
