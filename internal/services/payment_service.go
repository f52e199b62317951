package services

import (
	"context"

	"github.com/railyatra/railbook/internal/database"
	"github.com/railyatra/railbook/internal/models"
	"github.com/railyatra/railbook/internal/utils"
	"github.com/railyatra/railbook/pkg/validator"
	"github.com/sirupsen/logrus"
)

// PaymentService simulates the card charge and settles bookings
type PaymentService struct {
	bookings *database.BookingRepository
	payments *database.PaymentRepository
	cards    *validator.CardValidator
	logger   *logrus.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	bookings *database.BookingRepository,
	payments *database.PaymentRepository,
	logger *logrus.Logger,
) *PaymentService {
	return &PaymentService{
		bookings: bookings,
		payments: payments,
		cards:    validator.NewCardValidator(),
		logger:   logger,
	}
}

// Process validates the card, settles the booking and records the attempt.
// A malformed card number is rejected before any state changes, so the
// booking keeps its current status and no payment row is written.
func (s *PaymentService) Process(
	ctx context.Context,
	req *models.PaymentRequest,
	clientIP string,
	userAgent string,
) (*models.PaymentResult, error) {
	if req.PNR == "" {
		return nil, models.ErrInvalidInput("a booking PNR is required")
	}

	sanitized, err := s.cards.Validate(req.CardNumber)
	if err != nil {
		return nil, models.ErrInvalidInput(err.Error())
	}

	booking, err := s.bookings.GetByPNR(req.PNR)
	if err != nil {
		return nil, err
	}

	if !booking.CanPay() {
		return nil, models.ErrInvalidInput("booking " + booking.PNR + " is already confirmed")
	}

	// Simulated provider rule: cards ending in an even digit are approved
	lastDigit, err := s.cards.LastDigit(sanitized)
	if err != nil {
		return nil, models.ErrInvalidInput(err.Error())
	}
	approved := lastDigit%2 == 0

	bookingStatus := models.BookingStatusConfirmed
	paymentStatus := models.PaymentStatusSuccess
	if !approved {
		bookingStatus = models.BookingStatusPaymentFailed
		paymentStatus = models.PaymentStatusFailed
	}

	if err := s.bookings.UpdateStatus(booking.ID, bookingStatus); err != nil {
		return nil, err
	}
	booking.Status = bookingStatus

	payment := &models.Payment{
		BookingID: booking.ID,
		Amount:    booking.TotalFare,
		Method:    models.PaymentMethodCard,
		Status:    paymentStatus,
		CardLast4: sanitized[len(sanitized)-4:],
	}
	if clientIP != "" {
		payment.IPAddress = &clientIP
	}
	if userAgent != "" {
		device := utils.ParseUserAgent(userAgent)
		payment.UserAgent = &userAgent
		payment.DeviceType = &device.DeviceType
	}

	if err := s.payments.Record(ctx, payment); err != nil {
		return nil, err
	}

	if !approved {
		s.logger.WithFields(logrus.Fields{
			"pnr":        booking.PNR,
			"booking_id": booking.ID,
			"card_last4": payment.CardLast4,
		}).Warn("Payment declined")

		return nil, &models.PaymentDeclinedError{
			PNR:     booking.PNR,
			Message: "Payment failed. Try another card number ending in an even digit.",
		}
	}

	s.logger.WithFields(logrus.Fields{
		"pnr":        booking.PNR,
		"booking_id": booking.ID,
		"amount":     payment.Amount,
		"reference":  payment.Reference,
	}).Info("Payment approved")

	return &models.PaymentResult{
		Booking: booking,
		Payment: payment,
	}, nil
}
