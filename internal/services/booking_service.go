package services

import (
	"context"

	"github.com/railyatra/railbook/internal/database"
	"github.com/railyatra/railbook/internal/models"
	"github.com/sirupsen/logrus"
)

// BookingService handles booking creation and ticket composition
type BookingService struct {
	bookings  *database.BookingRepository
	schedules *database.ScheduleRepository
	payments  *database.PaymentRepository
	logger    *logrus.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookings *database.BookingRepository,
	schedules *database.ScheduleRepository,
	payments *database.PaymentRepository,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		schedules: schedules,
		payments:  payments,
		logger:    logger,
	}
}

// ScheduleForBooking returns the journey details shown on the passenger form
func (s *BookingService) ScheduleForBooking(scheduleID int) (*models.ScheduleResult, error) {
	return s.schedules.GetWithTrain(scheduleID)
}

// Create validates the form, prices the booking and reserves seats
func (s *BookingService) Create(req *models.CreateBookingRequest) (*models.BookingConfirmation, error) {
	passengers, err := req.Validate()
	if err != nil {
		return nil, err
	}

	journey, err := s.schedules.GetWithTrain(req.ScheduleID)
	if err != nil {
		return nil, err
	}

	// The decrement inside CreateBooking re-checks this under the row lock
	if len(passengers) > journey.AvailableSeats {
		return nil, &models.AvailabilityError{
			Requested: len(passengers),
			Available: journey.AvailableSeats,
		}
	}

	totalFare := journey.Fare * float64(len(passengers))

	booking, created, err := s.bookings.CreateBooking(req.ScheduleID, totalFare, passengers)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"pnr":             booking.PNR,
		"schedule_id":     req.ScheduleID,
		"passenger_count": booking.PassengerCount,
		"total_fare":      booking.TotalFare,
	}).Info("Booking created")

	return &models.BookingConfirmation{
		Booking:    booking,
		Passengers: created,
		Journey:    journey,
	}, nil
}

// Ticket composes the full view of a booking for the payment and ticket pages
func (s *BookingService) Ticket(ctx context.Context, pnr string) (*models.Ticket, error) {
	booking, err := s.bookings.GetByPNR(pnr)
	if err != nil {
		return nil, err
	}

	journey, err := s.schedules.GetWithTrain(booking.ScheduleID)
	if err != nil {
		return nil, err
	}

	passengers, err := s.bookings.GetPassengers(booking.ID)
	if err != nil {
		return nil, err
	}

	payment, err := s.payments.LatestSuccessful(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	return &models.Ticket{
		Booking:    booking,
		Journey:    journey,
		Passengers: passengers,
		Payment:    payment,
	}, nil
}
