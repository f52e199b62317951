package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scheduleResultTestColumns = []string{
	"schedule_id", "train_number", "train_name", "source", "destination",
	"travel_date", "departure_time", "arrival_time", "fare", "total_seats",
	"available_seats",
}

func TestSearchSchedules(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := newMockDatabase(db)
	repo := NewScheduleRepository(mockDB)

	travelDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM schedules s`).
			WithArgs("New Delhi", "Bhopal Junction", "2026-09-01").
			WillReturnRows(sqlmock.NewRows(scheduleResultTestColumns).
				AddRow(1, "12001", "Shatabdi Express", "New Delhi", "Bhopal Junction",
					travelDate, "06:00", "12:30", 450.00, 120, 87).
				AddRow(4, "12002", "Bhopal Shatabdi", "New Delhi", "Bhopal Junction",
					travelDate, "14:40", "20:55", 430.00, 100, 0))

		results, err := repo.Search("New Delhi", "Bhopal Junction", travelDate)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, 1, results[0].ScheduleID)
		assert.Equal(t, "Shatabdi Express", results[0].TrainName)
		assert.Equal(t, 87, results[0].AvailableSeats)
		assert.True(t, results[0].HasSeats())
		assert.False(t, results[1].HasSeats())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty Result", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM schedules s`).
			WithArgs("New Delhi", "Lucknow", "2026-09-01").
			WillReturnRows(sqlmock.NewRows(scheduleResultTestColumns))

		results, err := repo.Search("New Delhi", "Lucknow", travelDate)
		require.NoError(t, err)
		assert.Len(t, results, 0)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM schedules s`).
			WithArgs("New Delhi", "Bhopal Junction", "2026-09-01").
			WillReturnError(fmt.Errorf("database error"))

		results, err := repo.Search("New Delhi", "Bhopal Junction", travelDate)
		assert.Error(t, err)
		assert.Nil(t, results)
		assert.Contains(t, err.Error(), "failed to search schedules")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetScheduleWithTrain(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := newMockDatabase(db)
	repo := NewScheduleRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		travelDate := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT (.+) FROM schedules s`).
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows(scheduleResultTestColumns).
				AddRow(2, "12951", "Mumbai Rajdhani", "Mumbai Central", "New Delhi",
					travelDate, "16:45", "09:30", 1050.00, 90, 90))

		result, err := repo.GetWithTrain(2)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 2, result.ScheduleID)
		assert.Equal(t, "12951", result.TrainNumber)
		assert.Equal(t, "Mumbai Central", result.Source)
		assert.Equal(t, 1050.00, result.Fare)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM schedules s`).
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)

		result, err := repo.GetWithTrain(99)
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "schedule not found")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM schedules s`).
			WithArgs(2).
			WillReturnError(fmt.Errorf("database error"))

		result, err := repo.GetWithTrain(2)
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "failed to get schedule")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// Mock database implementation for testing. Get and Select delegate
// through sqlx so struct scanning behaves like the real connection.
type mockDatabase struct {
	db *sqlx.DB
}

func newMockDatabase(db *sql.DB) *mockDatabase {
	return &mockDatabase{db: sqlx.NewDb(db, "sqlmock")}
}

func (m *mockDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return m.db.Get(dest, query, args...)
}

func (m *mockDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return m.db.Select(dest, query, args...)
}

func (m *mockDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDatabase) Close() error {
	return m.db.Close()
}

func (m *mockDatabase) Ping() error {
	return m.db.Ping()
}
