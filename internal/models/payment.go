package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the outcome of a processed payment attempt
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// PaymentMethodCard is the only method the simulator supports
const PaymentMethodCard = "card"

// Payment represents one processed payment attempt against a booking.
// Rejected (malformed) card input never produces a row.
type Payment struct {
	ID         int           `json:"id" db:"id"`
	Reference  uuid.UUID     `json:"reference" db:"reference"`
	BookingID  int           `json:"booking_id" db:"booking_id"`
	Amount     float64       `json:"amount" db:"amount"`
	Method     string        `json:"method" db:"method"`
	Status     PaymentStatus `json:"status" db:"status"`
	CardLast4  string        `json:"card_last4" db:"card_last4"`
	IPAddress  *string       `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent  *string       `json:"user_agent,omitempty" db:"user_agent"`
	DeviceType *string       `json:"device_type,omitempty" db:"device_type"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
}

// MaskedCard formats the stored card digits for page rendering
func (p *Payment) MaskedCard() string {
	return "**** **** **** " + p.CardLast4
}

// PaymentRequest represents the payment form submission
type PaymentRequest struct {
	PNR        string `form:"pnr" binding:"required"`
	CardHolder string `form:"card_holder"`
	CardNumber string `form:"card_number" binding:"required"`
}

// PaymentResult is returned when a payment attempt is approved
type PaymentResult struct {
	Booking *Booking
	Payment *Payment
}
