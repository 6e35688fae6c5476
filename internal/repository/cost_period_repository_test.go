package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/workforce-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCostPeriodRepositoryListBySubject(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCostPeriodRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "employee_id", "series", "start_code", "end_code", "daily_rate", "created_at", "updated_at"}).
		AddRow("cp-1", "emp-1", "INTERNAL", 20240101, 20240630, "540.00", now, now).
		AddRow("cp-2", "emp-1", "INTERNAL", 20240701, nil, "580.00", now, now)
	mock.ExpectQuery("SELECT id, employee_id, series, start_code, end_code, daily_rate, created_at, updated_at").
		WithArgs("emp-1", models.CostSeriesInternal).
		WillReturnRows(rows)

	periods, err := repo.ListBySubject(context.Background(), "emp-1", models.CostSeriesInternal)
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, models.DateCode(20240101), periods[0].StartCode)
	assert.Nil(t, periods[1].EndCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCostPeriodRepositoryReplaceSet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCostPeriodRepository(db)

	end := models.DateCode(20240630)
	desired := []models.CostPeriod{
		{ID: "cp-keep", StartCode: 20240101, EndCode: &end, DailyRate: decimal.RequireFromString("540")},
		{StartCode: 20240701, DailyRate: decimal.RequireFromString("580")},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM cost_periods WHERE employee_id = $1 AND series = $2")).
		WithArgs("emp-1", models.CostSeriesInternal).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("cp-keep").AddRow("cp-stale"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cost_periods WHERE id = ANY($1)")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO cost_periods").
		WithArgs("cp-keep", "emp-1", models.CostSeriesInternal, models.DateCode(20240101), &end, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO cost_periods").
		WithArgs(sqlmock.AnyArg(), "emp-1", models.CostSeriesInternal, models.DateCode(20240701), nil, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReplaceSet(context.Background(), "emp-1", models.CostSeriesInternal, desired)
	require.NoError(t, err)
	// Generated id and ownership stamped onto the new row.
	assert.NotEmpty(t, desired[1].ID)
	assert.Equal(t, "emp-1", desired[1].EmployeeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCostPeriodRepositoryReplaceSetNoDeletions(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCostPeriodRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM cost_periods WHERE employee_id = $1 AND series = $2")).
		WithArgs("emp-1", models.CostSeriesExternal).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO cost_periods").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReplaceSet(context.Background(), "emp-1", models.CostSeriesExternal, []models.CostPeriod{
		{StartCode: 20240101, DailyRate: decimal.RequireFromString("500")},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCostPeriodRepositoryReplaceSetRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCostPeriodRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM cost_periods WHERE employee_id = $1 AND series = $2")).
		WithArgs("emp-1", models.CostSeriesInternal).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("cp-stale"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cost_periods WHERE id = ANY($1)")).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err := repo.ReplaceSet(context.Background(), "emp-1", models.CostSeriesInternal, []models.CostPeriod{
		{StartCode: 20240101, DailyRate: decimal.RequireFromString("500")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete absent cost periods")
	assert.NoError(t, mock.ExpectationsWereMet())
}
