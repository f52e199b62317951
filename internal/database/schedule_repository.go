package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/railyatra/railbook/internal/models"
)

// ScheduleRepository handles schedule lookup operations
type ScheduleRepository struct {
	db DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db DB) *ScheduleRepository {
	return &ScheduleRepository{
		db: db,
	}
}

const scheduleResultColumns = `
	s.id AS schedule_id,
	t.number AS train_number,
	t.name AS train_name,
	t.source,
	t.destination,
	s.travel_date,
	s.departure_time,
	s.arrival_time,
	s.fare,
	s.total_seats,
	s.available_seats`

// Search returns all schedules running between two stations on a date,
// ordered by departure time
func (r *ScheduleRepository) Search(source, destination string, travelDate time.Time) ([]models.ScheduleResult, error) {
	query := `
		SELECT ` + scheduleResultColumns + `
		FROM schedules s
		JOIN trains t ON t.id = s.train_id
		WHERE t.source = $1
		  AND t.destination = $2
		  AND s.travel_date = $3
		ORDER BY s.departure_time`

	var results []models.ScheduleResult
	// DATE comparison uses the formatted day to avoid timezone drift
	err := r.db.Select(&results, query, source, destination, travelDate.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to search schedules: %w", err)
	}

	return results, nil
}

// GetWithTrain returns a single schedule joined with its train
func (r *ScheduleRepository) GetWithTrain(scheduleID int) (*models.ScheduleResult, error) {
	query := `
		SELECT ` + scheduleResultColumns + `
		FROM schedules s
		JOIN trains t ON t.id = s.train_id
		WHERE s.id = $1`

	var result models.ScheduleResult
	err := r.db.Get(&result, query, scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &models.NotFoundError{Message: "schedule not found"}
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	return &result, nil
}
