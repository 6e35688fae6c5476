package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/workforce-api/internal/models"
)

func TestCalendarRepositoryLoadDays(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCalendarRepository(db)

	rows := sqlmock.NewRows([]string{"date_code", "is_holiday", "holiday_name"}).
		AddRow(20240101, true, "New Year's Day").
		AddRow(20240102, false, nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT date_code, is_holiday, holiday_name FROM calendar_days ORDER BY date_code ASC")).
		WillReturnRows(rows)

	days, err := repo.LoadDays(context.Background())
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, models.DateCode(20240101), days[0].Code)
	assert.True(t, days[0].IsHoliday)
	require.NotNil(t, days[0].HolidayName)
	assert.Equal(t, "New Year's Day", *days[0].HolidayName)
	assert.Nil(t, days[1].HolidayName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarRepositoryLoadWeeks(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCalendarRepository(db)

	rows := sqlmock.NewRows([]string{"code", "start_code", "end_code"}).
		AddRow(202401, 20240101, 20240107).
		AddRow(202402, 20240108, 20240114)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT code, start_code, end_code FROM calendar_weeks ORDER BY start_code ASC")).
		WillReturnRows(rows)

	weeks, err := repo.LoadWeeks(context.Background())
	require.NoError(t, err)
	require.Len(t, weeks, 2)
	assert.Equal(t, 202401, weeks[0].Code)
	assert.Equal(t, models.DateCode(20240108), weeks[1].StartCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
