package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/railyatra/railbook/internal/models"
	"github.com/sirupsen/logrus"
)

// PaymentRepository handles the payment trail for bookings
type PaymentRepository struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sqlx.DB, logger *logrus.Logger) *PaymentRepository {
	return &PaymentRepository{
		db:     db,
		logger: logger,
	}
}

// Record persists a processed payment attempt
// This should NEVER fail silently - every processed attempt must be kept
func (r *PaymentRepository) Record(ctx context.Context, payment *models.Payment) error {
	if payment == nil {
		return fmt.Errorf("payment entry cannot be nil")
	}

	// Ensure reference and timestamp are set
	if payment.Reference == uuid.Nil {
		payment.Reference = uuid.New()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO payments (
			reference, booking_id, amount, method, status,
			card_last4, ip_address, user_agent, device_type, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		payment.Reference, payment.BookingID, payment.Amount, payment.Method, payment.Status,
		payment.CardLast4, payment.IPAddress, payment.UserAgent, payment.DeviceType,
		payment.CreatedAt,
	).Scan(&payment.ID)

	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"booking_id": payment.BookingID,
			"status":     payment.Status,
		}).Error("CRITICAL: Failed to record payment attempt")
		return fmt.Errorf("failed to record payment: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"payment_id": payment.ID,
		"reference":  payment.Reference,
		"booking_id": payment.BookingID,
		"status":     payment.Status,
	}).Debug("Payment attempt recorded")

	return nil
}

// GetByBookingID retrieves all payment attempts for a booking, oldest first
func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int) ([]*models.Payment, error) {
	var payments []*models.Payment
	query := `
		SELECT id, reference, booking_id, amount, method, status,
		       card_last4, ip_address, user_agent, device_type, created_at
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at ASC`

	err := r.db.SelectContext(ctx, &payments, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments by booking ID: %w", err)
	}

	return payments, nil
}

// LatestSuccessful returns the most recent approved payment for a booking,
// or nil when no attempt has succeeded yet
func (r *PaymentRepository) LatestSuccessful(ctx context.Context, bookingID int) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `
		SELECT id, reference, booking_id, amount, method, status,
		       card_last4, ip_address, user_agent, device_type, created_at
		FROM payments
		WHERE booking_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.db.GetContext(ctx, payment, query, bookingID, models.PaymentStatusSuccess)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest successful payment: %w", err)
	}

	return payment, nil
}
