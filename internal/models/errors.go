package models

import "fmt"

// ErrInvalidInput creates a validation error
func ErrInvalidInput(message string) error {
	return &ValidationError{Message: message}
}

// ValidationError represents a validation error
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError indicates a requested record does not exist
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// AvailabilityError indicates a schedule has fewer seats than requested
type AvailabilityError struct {
	Requested int
	Available int
}

func (e *AvailabilityError) Error() string {
	return fmt.Sprintf("only %d seats available, %d requested", e.Available, e.Requested)
}

// PaymentDeclinedError indicates the simulated card payment was declined
type PaymentDeclinedError struct {
	PNR     string
	Message string
}

func (e *PaymentDeclinedError) Error() string {
	return e.Message
}
