package database

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/railyatra/railbook/internal/models"
)

// BookingRepository handles booking database operations
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// GeneratePNR generates a unique passenger name record
// Format: PNR-YYYYMMDD-XXXXXX (6 char alphanumeric)
// Example: PNR-20260825-A1B2C3
func (r *BookingRepository) GeneratePNR() (string, error) {
	todayStr := time.Now().Format("20060102")

	for attempts := 0; attempts < 10; attempts++ {
		// Generate 3 random bytes and take the 6 hex chars
		randomBytes := make([]byte, 3)
		if _, err := rand.Read(randomBytes); err != nil {
			return "", fmt.Errorf("failed to generate random bytes: %w", err)
		}
		randomStr := strings.ToUpper(hex.EncodeToString(randomBytes))

		newPNR := fmt.Sprintf("PNR-%s-%s", todayStr, randomStr)

		// Check if exists
		var count int
		err := r.db.Get(&count, `SELECT COUNT(*) FROM bookings WHERE pnr = $1`, newPNR)
		if err != nil {
			return "", fmt.Errorf("failed to check PNR uniqueness: %w", err)
		}

		if count == 0 {
			return newPNR, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique PNR after 10 attempts")
}

// CreateBooking reserves seats and creates the booking with its passengers
// in a single transaction. The seat decrement is conditional on enough
// availability, so two concurrent bookings can never oversell a schedule.
func (r *BookingRepository) CreateBooking(
	scheduleID int,
	totalFare float64,
	passengers []models.PassengerInput,
) (*models.Booking, []models.Passenger, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 1. Generate PNR
	pnr, err := r.GeneratePNR()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate PNR: %w", err)
	}

	// 2. Conditionally decrement seat inventory. No row comes back when
	// the schedule is missing or has fewer seats than requested.
	seatCount := len(passengers)
	var remaining int
	err = tx.QueryRowx(`
		UPDATE schedules
		SET available_seats = available_seats - $2
		WHERE id = $1 AND available_seats >= $2
		RETURNING available_seats`,
		scheduleID, seatCount,
	).Scan(&remaining)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var available int
			lookupErr := tx.Get(&available, `SELECT available_seats FROM schedules WHERE id = $1`, scheduleID)
			if errors.Is(lookupErr, sql.ErrNoRows) {
				return nil, nil, &models.NotFoundError{Message: "schedule not found"}
			}
			if lookupErr != nil {
				return nil, nil, fmt.Errorf("failed to check seat availability: %w", lookupErr)
			}
			return nil, nil, &models.AvailabilityError{Requested: seatCount, Available: available}
		}
		return nil, nil, fmt.Errorf("failed to reserve seats: %w", err)
	}

	// 3. Insert booking
	booking := &models.Booking{
		PNR:            pnr,
		ScheduleID:     scheduleID,
		PassengerCount: seatCount,
		TotalFare:      totalFare,
		Status:         models.BookingStatusPaymentPending,
	}

	err = tx.QueryRowx(`
		INSERT INTO bookings (pnr, schedule_id, passenger_count, total_fare, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		booking.PNR, booking.ScheduleID, booking.PassengerCount, booking.TotalFare, booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create booking: %w", err)
	}

	// 4. Insert passengers. Seats are numbered down from the pre-decrement
	// availability, so booking two seats at 50 hands out S050 and S049.
	created := make([]models.Passenger, 0, seatCount)
	for i, input := range passengers {
		passenger := models.Passenger{
			BookingID:      booking.ID,
			Name:           input.Name,
			Age:            input.Age,
			SeatPreference: input.SeatPreference,
			SeatNumber:     fmt.Sprintf("S%03d", remaining+seatCount-i),
		}

		err = tx.QueryRowx(`
			INSERT INTO passengers (booking_id, name, age, seat_preference, seat_number)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			passenger.BookingID, passenger.Name, passenger.Age, passenger.SeatPreference, passenger.SeatNumber,
		).Scan(&passenger.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create passenger %s: %w", input.Name, err)
		}

		created = append(created, passenger)
	}

	// Commit transaction
	if err = tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return booking, created, nil
}

// GetByPNR retrieves a booking by PNR
func (r *BookingRepository) GetByPNR(pnr string) (*models.Booking, error) {
	booking := &models.Booking{}
	query := `
		SELECT id, pnr, schedule_id, passenger_count, total_fare, status, created_at, updated_at
		FROM bookings WHERE pnr = $1`

	err := r.db.Get(booking, query, pnr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &models.NotFoundError{Message: "booking not found"}
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

// GetPassengers retrieves the passengers of a booking in seat assignment order
func (r *BookingRepository) GetPassengers(bookingID int) ([]models.Passenger, error) {
	query := `
		SELECT id, booking_id, name, age, seat_preference, seat_number
		FROM passengers
		WHERE booking_id = $1
		ORDER BY id`

	var passengers []models.Passenger
	if err := r.db.Select(&passengers, query, bookingID); err != nil {
		return nil, fmt.Errorf("failed to get passengers: %w", err)
	}

	return passengers, nil
}

// UpdateStatus moves a booking to a new payment status
func (r *BookingRepository) UpdateStatus(bookingID int, status models.BookingStatus) error {
	result, err := r.db.Exec(
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, bookingID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return &models.NotFoundError{Message: "booking not found"}
	}

	return nil
}
