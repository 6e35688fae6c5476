package dto

// CalendarDayInfo describes one classified calendar day.
type CalendarDayInfo struct {
	Date        string  `json:"date"`
	Code        int     `json:"code"`
	Weekday     string  `json:"weekday"`
	IsHoliday   bool    `json:"is_holiday"`
	HolidayName *string `json:"holiday_name,omitempty"`
	Working     bool    `json:"working"`
}

// WorkingDaysResponse partitions a day range into working and non-working
// days; the two lists are disjoint and together cover every day in range.
type WorkingDaysResponse struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	Working    []string `json:"working"`
	NonWorking []string `json:"non_working"`
}

// WeekInfo describes a seeded week with its derived working hours.
type WeekInfo struct {
	Code         int    `json:"code"`
	Start        string `json:"start"`
	End          string `json:"end"`
	WorkingHours int    `json:"working_hours"`
}
