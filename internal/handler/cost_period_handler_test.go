package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/workforce-api/internal/dto"
	"github.com/noah-isme/workforce-api/internal/models"
	appErrors "github.com/noah-isme/workforce-api/pkg/errors"
)

type costPeriodServiceMock struct {
	listResp    []models.CostPeriod
	listErr     error
	replaceResp []models.CostPeriod
	replaceErr  error
	lastSeries  models.CostSeries
	lastRequest dto.ReplaceCostPeriodsRequest
}

func (m *costPeriodServiceMock) List(ctx context.Context, employeeID string, series models.CostSeries) ([]models.CostPeriod, error) {
	m.lastSeries = series
	return m.listResp, m.listErr
}

func (m *costPeriodServiceMock) Replace(ctx context.Context, employeeID string, series models.CostSeries, req dto.ReplaceCostPeriodsRequest) ([]models.CostPeriod, error) {
	m.lastSeries = series
	m.lastRequest = req
	return m.replaceResp, m.replaceErr
}

func TestCostPeriodHandlerListUppercasesSeries(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &costPeriodServiceMock{}
	handler := NewCostPeriodHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/employees/emp-1/cost-periods/internal", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "emp-1"}, {Key: "series", Value: "internal"}}

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.CostSeriesInternal, mockSvc.lastSeries)
}

func TestCostPeriodHandlerReplace(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &costPeriodServiceMock{replaceResp: []models.CostPeriod{{ID: "cp-1"}}}
	handler := NewCostPeriodHandler(mockSvc)

	body := `{"periods":[{"start":"2024-01-01","end":"2024-06-30","daily_rate":"540.00"}]}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/employees/emp-1/cost-periods/external", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "emp-1"}, {Key: "series", Value: "external"}}

	handler.Replace(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.CostSeriesExternal, mockSvc.lastSeries)
	require.Len(t, mockSvc.lastRequest.Periods, 1)
	assert.Equal(t, "2024-01-01", mockSvc.lastRequest.Periods[0].Start)
}

func TestCostPeriodHandlerReplaceInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCostPeriodHandler(&costPeriodServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/employees/emp-1/cost-periods/internal", bytes.NewBufferString(`{"periods":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "emp-1"}, {Key: "series", Value: "internal"}}

	handler.Replace(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCostPeriodHandlerReplaceRejection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &costPeriodServiceMock{replaceErr: appErrors.ErrRangeGap}
	handler := NewCostPeriodHandler(mockSvc)

	body := `{"periods":[]}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/employees/emp-1/cost-periods/internal", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "emp-1"}, {Key: "series", Value: "internal"}}

	handler.Replace(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrRangeGap.Code)
}
