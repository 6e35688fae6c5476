package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/workforce-api/internal/dto"
	"github.com/noah-isme/workforce-api/internal/models"
)

type occupancyServiceMock struct {
	bars       []dto.GanttBar
	series     *dto.OccupancySeries
	payload    []byte
	filename   string
	lastFrom   models.DateCode
	lastTo     models.DateCode
	lastFormat string
}

func (m *occupancyServiceMock) Bars(ctx context.Context, employeeID string) ([]dto.GanttBar, error) {
	return m.bars, nil
}

func (m *occupancyServiceMock) Occupancy(ctx context.Context, employeeID string, from, to models.DateCode) (*dto.OccupancySeries, error) {
	m.lastFrom, m.lastTo = from, to
	return m.series, nil
}

func (m *occupancyServiceMock) Availability(ctx context.Context, employeeID string, from, to models.DateCode) (*dto.OccupancySeries, error) {
	m.lastFrom, m.lastTo = from, to
	return m.series, nil
}

func (m *occupancyServiceMock) ExportOccupancy(ctx context.Context, employeeID string, from, to models.DateCode, format string) ([]byte, string, error) {
	m.lastFormat = format
	return m.payload, m.filename, nil
}

func staffingContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "emp-1"}}
	return c, w
}

func TestStaffingHandlerBars(t *testing.T) {
	mockSvc := &occupancyServiceMock{bars: []dto.GanttBar{{AssignmentID: "a1", Label: "Atlas"}}}
	handler := NewStaffingHandler(mockSvc)

	c, w := staffingContext(t, "/employees/emp-1/staffing/bars")
	handler.Bars(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Atlas")
}

func TestStaffingHandlerOccupancyParsesWindow(t *testing.T) {
	mockSvc := &occupancyServiceMock{series: &dto.OccupancySeries{EmployeeID: "emp-1"}}
	handler := NewStaffingHandler(mockSvc)

	c, w := staffingContext(t, "/employees/emp-1/staffing/occupancy?from=2024-01-08&to=2024-01-14")
	handler.Occupancy(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.DateCode(20240108), mockSvc.lastFrom)
	assert.Equal(t, models.DateCode(20240114), mockSvc.lastTo)
}

func TestStaffingHandlerOccupancyMissingWindow(t *testing.T) {
	handler := NewStaffingHandler(&occupancyServiceMock{})

	c, w := staffingContext(t, "/employees/emp-1/staffing/occupancy?from=2024-01-08")
	handler.Occupancy(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStaffingHandlerAvailability(t *testing.T) {
	mockSvc := &occupancyServiceMock{series: &dto.OccupancySeries{EmployeeID: "emp-1"}}
	handler := NewStaffingHandler(mockSvc)

	c, w := staffingContext(t, "/employees/emp-1/staffing/availability?from=2024-01-08&to=2024-01-14")
	handler.Availability(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "emp-1")
}

func TestStaffingHandlerExport(t *testing.T) {
	mockSvc := &occupancyServiceMock{
		payload:  []byte("Date,Weekday,Working,Occupancy %\n"),
		filename: "occupancy_emp-1_2024-01-08_2024-01-14.csv",
	}
	handler := NewStaffingHandler(mockSvc)

	c, w := staffingContext(t, "/employees/emp-1/staffing/export?from=2024-01-08&to=2024-01-14&format=csv")
	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", mockSvc.lastFormat)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "occupancy_emp-1_2024-01-08_2024-01-14.csv")
}
