package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/workforce-api/internal/dto"
	"github.com/noah-isme/workforce-api/internal/models"
	"github.com/noah-isme/workforce-api/pkg/response"
)

type occupancyService interface {
	Bars(ctx context.Context, employeeID string) ([]dto.GanttBar, error)
	Occupancy(ctx context.Context, employeeID string, from, to models.DateCode) (*dto.OccupancySeries, error)
	Availability(ctx context.Context, employeeID string, from, to models.DateCode) (*dto.OccupancySeries, error)
	ExportOccupancy(ctx context.Context, employeeID string, from, to models.DateCode, format string) ([]byte, string, error)
}

// StaffingHandler exposes the staffing timeline and heatmap endpoints.
type StaffingHandler struct {
	service occupancyService
}

// NewStaffingHandler constructs the handler.
func NewStaffingHandler(service occupancyService) *StaffingHandler {
	return &StaffingHandler{service: service}
}

// Bars godoc
// @Summary Project an employee's assignments into timeline bars
// @Tags Staffing
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} response.Envelope
// @Router /employees/{id}/staffing/bars [get]
func (h *StaffingHandler) Bars(c *gin.Context) {
	bars, err := h.service.Bars(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bars, nil)
}

// Occupancy godoc
// @Summary Day-indexed occupancy series for an employee
// @Tags Staffing
// @Produce json
// @Param id path string true "Employee ID"
// @Param from query string true "Window start (YYYY-MM-DD)"
// @Param to query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /employees/{id}/staffing/occupancy [get]
func (h *StaffingHandler) Occupancy(c *gin.Context) {
	from, to, err := windowParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	series, err := h.service.Occupancy(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, series, nil)
}

// Availability godoc
// @Summary Day-indexed remaining availability for an employee
// @Tags Staffing
// @Produce json
// @Param id path string true "Employee ID"
// @Param from query string true "Window start (YYYY-MM-DD)"
// @Param to query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /employees/{id}/staffing/availability [get]
func (h *StaffingHandler) Availability(c *gin.Context) {
	from, to, err := windowParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	series, err := h.service.Availability(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, series, nil)
}

// Export godoc
// @Summary Export an employee's occupancy series as CSV or PDF
// @Tags Staffing
// @Produce octet-stream
// @Param id path string true "Employee ID"
// @Param from query string true "Window start (YYYY-MM-DD)"
// @Param to query string true "Window end (YYYY-MM-DD)"
// @Param format query string true "csv or pdf"
// @Success 200 {file} binary
// @Router /employees/{id}/staffing/export [get]
func (h *StaffingHandler) Export(c *gin.Context) {
	from, to, err := windowParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	format := c.DefaultQuery("format", "csv")
	payload, filename, err := h.service.ExportOccupancy(c.Request.Context(), c.Param("id"), from, to, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	contentType := "text/csv"
	if format == "pdf" {
		contentType = "application/pdf"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}

func windowParams(c *gin.Context) (models.DateCode, models.DateCode, error) {
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return 0, 0, err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}
