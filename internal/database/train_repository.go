package database

import (
	"fmt"
)

// TrainRepository handles train reference data operations
type TrainRepository struct {
	db DB
}

// NewTrainRepository creates a new train repository
func NewTrainRepository(db DB) *TrainRepository {
	return &TrainRepository{
		db: db,
	}
}

// ListSources returns every distinct origin station, ordered by name
func (r *TrainRepository) ListSources() ([]string, error) {
	query := `SELECT DISTINCT source FROM trains ORDER BY source`

	var sources []string
	if err := r.db.Select(&sources, query); err != nil {
		return nil, fmt.Errorf("failed to list source stations: %w", err)
	}

	return sources, nil
}

// ListDestinations returns every distinct destination station, ordered by name
func (r *TrainRepository) ListDestinations() ([]string, error) {
	query := `SELECT DISTINCT destination FROM trains ORDER BY destination`

	var destinations []string
	if err := r.db.Select(&destinations, query); err != nil {
		return nil, fmt.Errorf("failed to list destination stations: %w", err)
	}

	return destinations, nil
}
