package models

import "time"

// Train represents static train reference data
type Train struct {
	ID          int    `json:"id" db:"id"`
	Number      string `json:"number" db:"number"`
	Name        string `json:"name" db:"name"`
	Source      string `json:"source" db:"source"`
	Destination string `json:"destination" db:"destination"`
}

// Schedule represents a train running on a specific date with seat inventory
type Schedule struct {
	ID             int       `json:"id" db:"id"`
	TrainID        int       `json:"train_id" db:"train_id"`
	TravelDate     time.Time `json:"travel_date" db:"travel_date"`
	DepartureTime  string    `json:"departure_time" db:"departure_time"`
	ArrivalTime    string    `json:"arrival_time" db:"arrival_time"`
	Fare           float64   `json:"fare" db:"fare"`
	TotalSeats     int       `json:"total_seats" db:"total_seats"`
	AvailableSeats int       `json:"available_seats" db:"available_seats"`
}

// ScheduleResult is a schedule joined with its train, as shown on the
// results, booking, payment and ticket pages
type ScheduleResult struct {
	ScheduleID     int       `json:"schedule_id" db:"schedule_id"`
	TrainNumber    string    `json:"train_number" db:"train_number"`
	TrainName      string    `json:"train_name" db:"train_name"`
	Source         string    `json:"source" db:"source"`
	Destination    string    `json:"destination" db:"destination"`
	TravelDate     time.Time `json:"travel_date" db:"travel_date"`
	DepartureTime  string    `json:"departure_time" db:"departure_time"`
	ArrivalTime    string    `json:"arrival_time" db:"arrival_time"`
	Fare           float64   `json:"fare" db:"fare"`
	TotalSeats     int       `json:"total_seats" db:"total_seats"`
	AvailableSeats int       `json:"available_seats" db:"available_seats"`
}

// TravelDateDisplay formats the travel date for page rendering
func (s ScheduleResult) TravelDateDisplay() string {
	return s.TravelDate.Format("Mon, 02 Jan 2006")
}

// TravelDateValue formats the travel date as an ISO date string
func (s ScheduleResult) TravelDateValue() string {
	return s.TravelDate.Format("2006-01-02")
}

// HasSeats reports whether at least one seat can still be booked
func (s ScheduleResult) HasSeats() bool {
	return s.AvailableSeats > 0
}

// SearchRequest represents the search form submission
type SearchRequest struct {
	Source      string `form:"source" binding:"required"`
	Destination string `form:"destination" binding:"required"`
	TravelDate  string `form:"travel_date" binding:"required"`
}

// Validate validates the search request and returns the parsed travel date
func (r *SearchRequest) Validate() (time.Time, error) {
	if r.Source == "" {
		return time.Time{}, ErrInvalidInput("source station is required")
	}
	if r.Destination == "" {
		return time.Time{}, ErrInvalidInput("destination station is required")
	}
	if r.Source == r.Destination {
		return time.Time{}, ErrInvalidInput("source and destination cannot be the same")
	}

	date, err := time.Parse("2006-01-02", r.TravelDate)
	if err != nil {
		return time.Time{}, ErrInvalidInput("travel date must be in YYYY-MM-DD format")
	}

	// The date picker floors to today client-side; enforce the same here
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return time.Time{}, ErrInvalidInput("travel date cannot be in the past")
	}

	return date, nil
}
