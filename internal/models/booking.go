package models

import (
	"strings"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPaymentPending BookingStatus = "payment_pending"
	BookingStatusConfirmed      BookingStatus = "confirmed"
	BookingStatusPaymentFailed  BookingStatus = "payment_failed"
)

// SeatPreference represents a passenger's requested berth or position
type SeatPreference string

const (
	SeatPreferenceNone   SeatPreference = "none"
	SeatPreferenceLower  SeatPreference = "lower"
	SeatPreferenceMiddle SeatPreference = "middle"
	SeatPreferenceUpper  SeatPreference = "upper"
	SeatPreferenceWindow SeatPreference = "window"
	SeatPreferenceAisle  SeatPreference = "aisle"
)

// SeatPreferences lists the accepted values in form display order
var SeatPreferences = []SeatPreference{
	SeatPreferenceNone,
	SeatPreferenceLower,
	SeatPreferenceMiddle,
	SeatPreferenceUpper,
	SeatPreferenceWindow,
	SeatPreferenceAisle,
}

// MaxPassengersPerBooking caps the party size for a single PNR
const MaxPassengersPerBooking = 6

// Booking represents a reservation against one schedule
type Booking struct {
	ID             int           `json:"id" db:"id"`
	PNR            string        `json:"pnr" db:"pnr"`
	ScheduleID     int           `json:"schedule_id" db:"schedule_id"`
	PassengerCount int           `json:"passenger_count" db:"passenger_count"`
	TotalFare      float64       `json:"total_fare" db:"total_fare"`
	Status         BookingStatus `json:"status" db:"status"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
}

// IsConfirmed reports whether payment has succeeded for this booking
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}

// CanPay reports whether a payment attempt is allowed. A declined payment
// keeps the booking payable so the passenger can retry with another card.
func (b *Booking) CanPay() bool {
	return b.Status == BookingStatusPaymentPending || b.Status == BookingStatusPaymentFailed
}

// CreatedAtDisplay formats the booking time for page rendering
func (b *Booking) CreatedAtDisplay() string {
	return b.CreatedAt.Format("02 Jan 2006 15:04")
}

// Passenger represents one traveller on a booking
type Passenger struct {
	ID             int            `json:"id" db:"id"`
	BookingID      int            `json:"booking_id" db:"booking_id"`
	Name           string         `json:"name" db:"name"`
	Age            int            `json:"age" db:"age"`
	SeatPreference SeatPreference `json:"seat_preference" db:"seat_preference"`
	SeatNumber     string         `json:"seat_number" db:"seat_number"`
}

// PassengerInput carries validated passenger details into booking creation
type PassengerInput struct {
	Name           string
	Age            int
	SeatPreference SeatPreference
}

// CreateBookingRequest represents the passenger-details form submission.
// The form repeats passenger_name/passenger_age/seat_preference once per
// traveller, so the fields bind to parallel slices.
type CreateBookingRequest struct {
	ScheduleID      int      `form:"schedule_id" binding:"required"`
	PassengerNames  []string `form:"passenger_name" binding:"required"`
	PassengerAges   []int    `form:"passenger_age" binding:"required"`
	SeatPreferences []string `form:"seat_preference"`
}

// Validate validates the request and returns the normalized passenger list
func (r *CreateBookingRequest) Validate() ([]PassengerInput, error) {
	if r.ScheduleID <= 0 {
		return nil, ErrInvalidInput("a schedule must be selected")
	}

	count := len(r.PassengerNames)
	if count == 0 {
		return nil, ErrInvalidInput("at least one passenger is required")
	}
	if count > MaxPassengersPerBooking {
		return nil, ErrInvalidInput("a booking can hold at most 6 passengers")
	}
	if len(r.PassengerAges) != count {
		return nil, ErrInvalidInput("every passenger needs a name and an age")
	}
	if len(r.SeatPreferences) != 0 && len(r.SeatPreferences) != count {
		return nil, ErrInvalidInput("seat preference does not match the passenger list")
	}

	passengers := make([]PassengerInput, 0, count)
	for i := 0; i < count; i++ {
		name := strings.TrimSpace(r.PassengerNames[i])
		if name == "" {
			return nil, ErrInvalidInput("passenger name cannot be empty")
		}

		age := r.PassengerAges[i]
		if age < 1 || age > 120 {
			return nil, ErrInvalidInput("passenger age must be between 1 and 120")
		}

		pref := SeatPreferenceNone
		if len(r.SeatPreferences) == count && r.SeatPreferences[i] != "" {
			pref = SeatPreference(r.SeatPreferences[i])
			if !isValidSeatPreference(pref) {
				return nil, ErrInvalidInput("unknown seat preference: " + r.SeatPreferences[i])
			}
		}

		passengers = append(passengers, PassengerInput{
			Name:           name,
			Age:            age,
			SeatPreference: pref,
		})
	}

	return passengers, nil
}

func isValidSeatPreference(p SeatPreference) bool {
	for _, valid := range SeatPreferences {
		if p == valid {
			return true
		}
	}
	return false
}

// BookingConfirmation is the result of a successful booking creation
type BookingConfirmation struct {
	Booking    *Booking
	Passengers []Passenger
	Journey    *ScheduleResult
}

// Ticket is the composed view rendered on the ticket and payment pages
type Ticket struct {
	Booking    *Booking
	Journey    *ScheduleResult
	Passengers []Passenger
	Payment    *Payment
}
