package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/workforce-api/internal/dto"
	"github.com/noah-isme/workforce-api/internal/models"
	appErrors "github.com/noah-isme/workforce-api/pkg/errors"
	"github.com/noah-isme/workforce-api/pkg/response"
)

type businessCalendar interface {
	Day(code models.DateCode) (models.CalendarDay, error)
	AddWorkingDays(start models.DateCode, n int) (models.DateCode, error)
	WorkingDaysBetween(start, end models.DateCode) ([]models.DateCode, error)
	NonWorkingDaysBetween(start, end models.DateCode) ([]models.DateCode, error)
	WeekContaining(code models.DateCode) (models.Week, error)
	CurrentWeek() (models.Week, error)
	WorkingHours(week models.Week) (int, error)
}

// CalendarHandler exposes the business-calendar endpoints.
type CalendarHandler struct {
	calendar businessCalendar
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(calendar businessCalendar) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// Day godoc
// @Summary Classify a single calendar day
// @Tags Calendar
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /calendar/days/{date} [get]
func (h *CalendarHandler) Day(c *gin.Context) {
	code, err := models.ParseDateCode(c.Param("date"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid date, expected YYYY-MM-DD"))
		return
	}
	day, err := h.calendar.Day(code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.CalendarDayInfo{
		Date:        day.Code.String(),
		Code:        int(day.Code),
		Weekday:     day.Weekday().String(),
		IsHoliday:   day.IsHoliday,
		HolidayName: day.HolidayName,
		Working:     day.IsWorkingDay(),
	}, nil)
}

// WorkingDays godoc
// @Summary Partition a date range into working and non-working days
// @Tags Calendar
// @Produce json
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /calendar/working-days [get]
func (h *CalendarHandler) WorkingDays(c *gin.Context) {
	start, err := parseDateQuery(c, "start")
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		response.Error(c, err)
		return
	}
	working, err := h.calendar.WorkingDaysBetween(start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	nonWorking, err := h.calendar.NonWorkingDaysBetween(start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	resp := dto.WorkingDaysResponse{
		From:       start.String(),
		To:         end.String(),
		Working:    make([]string, 0, len(working)),
		NonWorking: make([]string, 0, len(nonWorking)),
	}
	for _, d := range working {
		resp.Working = append(resp.Working, d.String())
	}
	for _, d := range nonWorking {
		resp.NonWorking = append(resp.NonWorking, d.String())
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// AddWorkingDays godoc
// @Summary Resolve the n-th working day counting from start inclusive
// @Tags Calendar
// @Produce json
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param days query int true "Working day offset (>= 1)"
// @Success 200 {object} response.Envelope
// @Router /calendar/working-days/offset [get]
func (h *CalendarHandler) AddWorkingDays(c *gin.Context) {
	start, err := parseDateQuery(c, "start")
	if err != nil {
		response.Error(c, err)
		return
	}
	n, err := strconv.Atoi(c.Query("days"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "days must be an integer"))
		return
	}
	date, err := h.calendar.AddWorkingDays(start, n)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"date": date.String(), "code": int(date)}, nil)
}

// Week godoc
// @Summary Resolve the seeded week containing a date
// @Tags Calendar
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /calendar/weeks [get]
func (h *CalendarHandler) Week(c *gin.Context) {
	var week models.Week
	var err error
	if raw := c.Query("date"); raw != "" {
		var code models.DateCode
		code, err = models.ParseDateCode(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid date, expected YYYY-MM-DD"))
			return
		}
		week, err = h.calendar.WeekContaining(code)
	} else {
		week, err = h.calendar.CurrentWeek()
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	hours, err := h.calendar.WorkingHours(week)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.WeekInfo{
		Code:         week.Code,
		Start:        week.StartCode.String(),
		End:          week.EndCode.String(),
		WorkingHours: hours,
	}, nil)
}
