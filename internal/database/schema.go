package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// schemaStatements are executed in order by EnsureSchema. Every statement
// is idempotent so the provisioner can run against an existing database.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS trains (
		id SERIAL PRIMARY KEY,
		number TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		source TEXT NOT NULL,
		destination TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS schedules (
		id SERIAL PRIMARY KEY,
		train_id INTEGER NOT NULL REFERENCES trains(id) ON DELETE CASCADE,
		travel_date DATE NOT NULL,
		departure_time TEXT NOT NULL,
		arrival_time TEXT NOT NULL,
		fare NUMERIC(10, 2) NOT NULL,
		total_seats INTEGER NOT NULL CHECK (total_seats > 0),
		available_seats INTEGER NOT NULL,
		CHECK (available_seats >= 0 AND available_seats <= total_seats)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id SERIAL PRIMARY KEY,
		pnr TEXT NOT NULL UNIQUE,
		schedule_id INTEGER NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
		passenger_count INTEGER NOT NULL CHECK (passenger_count > 0),
		total_fare NUMERIC(10, 2) NOT NULL,
		status TEXT NOT NULL DEFAULT 'payment_pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS passengers (
		id SERIAL PRIMARY KEY,
		booking_id INTEGER NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		age INTEGER NOT NULL CHECK (age >= 1 AND age <= 120),
		seat_preference TEXT NOT NULL DEFAULT 'none',
		seat_number TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id SERIAL PRIMARY KEY,
		reference UUID NOT NULL UNIQUE,
		booking_id INTEGER NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
		amount NUMERIC(10, 2) NOT NULL,
		method TEXT NOT NULL DEFAULT 'card',
		status TEXT NOT NULL,
		card_last4 TEXT NOT NULL,
		ip_address TEXT,
		user_agent TEXT,
		device_type TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_schedules_search ON schedules (travel_date, train_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_schedule ON bookings (schedule_id)`,
	`CREATE INDEX IF NOT EXISTS idx_passengers_booking ON passengers (booking_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_booking ON payments (booking_id)`,
}

// EnsureSchema creates all tables and indexes if they do not exist yet
func EnsureSchema(db DB) error {
	for _, statement := range schemaStatements {
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}

type seedTrain struct {
	Number      string
	Name        string
	Source      string
	Destination string
}

type seedSchedule struct {
	TrainNumber   string
	DaysFromNow   int
	DepartureTime string
	ArrivalTime   string
	Fare          float64
	Seats         int
}

var sampleTrains = []seedTrain{
	{Number: "12001", Name: "Shatabdi Express", Source: "New Delhi", Destination: "Bhopal Junction"},
	{Number: "12951", Name: "Mumbai Rajdhani", Source: "Mumbai Central", Destination: "New Delhi"},
	{Number: "12230", Name: "Lucknow Mail", Source: "Lucknow", Destination: "New Delhi"},
}

var sampleSchedules = []seedSchedule{
	{TrainNumber: "12001", DaysFromNow: 1, DepartureTime: "06:00", ArrivalTime: "12:30", Fare: 450.00, Seats: 120},
	{TrainNumber: "12951", DaysFromNow: 2, DepartureTime: "16:45", ArrivalTime: "09:30", Fare: 1050.00, Seats: 90},
	{TrainNumber: "12230", DaysFromNow: 3, DepartureTime: "21:15", ArrivalTime: "07:10", Fare: 1480.00, Seats: 110},
}

// SeedSampleData inserts demo trains and schedules. Seeding only happens
// when the trains table is empty so reruns never duplicate rows.
func SeedSampleData(db DB, logger *logrus.Logger) error {
	var trainCount int
	if err := db.Get(&trainCount, "SELECT COUNT(*) FROM trains"); err != nil {
		return fmt.Errorf("failed to check existing trains: %w", err)
	}
	if trainCount > 0 {
		logger.Debug("Sample data already present, skipping seed")
		return nil
	}

	trainIDs := make(map[string]int, len(sampleTrains))
	for _, train := range sampleTrains {
		var id int
		err := db.QueryRow(
			`INSERT INTO trains (number, name, source, destination)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			train.Number, train.Name, train.Source, train.Destination,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to seed train %s: %w", train.Number, err)
		}
		trainIDs[train.Number] = id
	}

	for _, schedule := range sampleSchedules {
		travelDate := time.Now().AddDate(0, 0, schedule.DaysFromNow)
		_, err := db.Exec(
			`INSERT INTO schedules (train_id, travel_date, departure_time, arrival_time, fare, total_seats, available_seats)
			 VALUES ($1, $2, $3, $4, $5, $6, $6)`,
			trainIDs[schedule.TrainNumber], travelDate.Format("2006-01-02"),
			schedule.DepartureTime, schedule.ArrivalTime, schedule.Fare, schedule.Seats,
		)
		if err != nil {
			return fmt.Errorf("failed to seed schedule for train %s: %w", schedule.TrainNumber, err)
		}
	}

	logger.WithFields(logrus.Fields{
		"trains":    len(sampleTrains),
		"schedules": len(sampleSchedules),
	}).Info("Sample data seeded")

	return nil
}
