package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/workforce-api/internal/dto"
	"github.com/noah-isme/workforce-api/internal/models"
	appErrors "github.com/noah-isme/workforce-api/pkg/errors"
	"github.com/noah-isme/workforce-api/pkg/response"
)

type costPeriodService interface {
	List(ctx context.Context, employeeID string, series models.CostSeries) ([]models.CostPeriod, error)
	Replace(ctx context.Context, employeeID string, series models.CostSeries, req dto.ReplaceCostPeriodsRequest) ([]models.CostPeriod, error)
}

// CostPeriodHandler exposes the cost-period read and replace endpoints.
type CostPeriodHandler struct {
	service costPeriodService
}

// NewCostPeriodHandler constructs the handler.
func NewCostPeriodHandler(service costPeriodService) *CostPeriodHandler {
	return &CostPeriodHandler{service: service}
}

func seriesParam(c *gin.Context) models.CostSeries {
	return models.CostSeries(strings.ToUpper(c.Param("series")))
}

// List godoc
// @Summary List an employee's cost periods for one series
// @Tags CostPeriods
// @Produce json
// @Param id path string true "Employee ID"
// @Param series path string true "Cost series (internal or external)"
// @Success 200 {object} response.Envelope
// @Router /employees/{id}/cost-periods/{series} [get]
func (h *CostPeriodHandler) List(c *gin.Context) {
	periods, err := h.service.List(c.Request.Context(), c.Param("id"), seriesParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, periods, nil)
}

// Replace godoc
// @Summary Replace an employee's cost periods for one series
// @Description Validates the desired set and swaps it in atomically. A
// @Description rejected set leaves the stored periods untouched.
// @Tags CostPeriods
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param series path string true "Cost series (internal or external)"
// @Param request body dto.ReplaceCostPeriodsRequest true "Desired period set"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /employees/{id}/cost-periods/{series} [put]
func (h *CostPeriodHandler) Replace(c *gin.Context) {
	var req dto.ReplaceCostPeriodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	periods, err := h.service.Replace(c.Request.Context(), c.Param("id"), seriesParam(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, periods, nil)
}
