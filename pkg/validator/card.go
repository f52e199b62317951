package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidLength indicates the card number is outside the 12-19 digit range
	ErrInvalidLength = errors.New("card number must be between 12 and 19 digits")

	// ErrInvalidFormat indicates the card number contains non-digit characters
	ErrInvalidFormat = errors.New("card number can only contain digits")

	// ErrEmptyCard indicates the card number is empty
	ErrEmptyCard = errors.New("card number cannot be empty")
)

const (
	minCardDigits = 12
	maxCardDigits = 19
)

// cardRegex matches digits only
var cardRegex = regexp.MustCompile(`^\d+$`)

// CardValidator handles card number validation
type CardValidator struct{}

// NewCardValidator creates a new card validator instance
func NewCardValidator() *CardValidator {
	return &CardValidator{}
}

// Validate validates a card number.
// Accepts format: 4242424242424242 or 4242 4242 4242 4242 or 4242-4242-4242-4242
// Returns the sanitized card number (digits only) and an error if invalid.
func (v *CardValidator) Validate(card string) (string, error) {
	// Check if empty
	if card == "" {
		return "", ErrEmptyCard
	}

	// Sanitize input
	sanitized := v.Sanitize(card)
	if sanitized == "" {
		return "", ErrEmptyCard
	}

	// Check if contains only digits
	if !cardRegex.MatchString(sanitized) {
		return "", ErrInvalidFormat
	}

	// Check length
	if len(sanitized) < minCardDigits || len(sanitized) > maxCardDigits {
		return "", ErrInvalidLength
	}

	return sanitized, nil
}

// Sanitize removes common separator characters from a card number
func (v *CardValidator) Sanitize(card string) string {
	card = strings.ReplaceAll(card, " ", "")
	card = strings.ReplaceAll(card, "-", "")
	card = strings.ReplaceAll(card, ".", "")
	return card
}

// LastDigit returns the final digit of a valid card number
func (v *CardValidator) LastDigit(card string) (int, error) {
	sanitized, err := v.Validate(card)
	if err != nil {
		return 0, err
	}

	return int(sanitized[len(sanitized)-1] - '0'), nil
}

// Last4 returns the last four digits of a valid card number
func (v *CardValidator) Last4(card string) (string, error) {
	sanitized, err := v.Validate(card)
	if err != nil {
		return "", err
	}

	return sanitized[len(sanitized)-4:], nil
}

// Mask formats a card number for display, keeping only the last four digits
func (v *CardValidator) Mask(card string) (string, error) {
	sanitized, err := v.Validate(card)
	if err != nil {
		return "", err
	}

	return strings.Repeat("*", len(sanitized)-4) + sanitized[len(sanitized)-4:], nil
}

// IsValid is a convenience method that returns true if the card number is valid
func (v *CardValidator) IsValid(card string) bool {
	_, err := v.Validate(card)
	return err == nil
}

// MustValidate validates and panics if invalid (use for testing only)
func (v *CardValidator) MustValidate(card string) string {
	sanitized, err := v.Validate(card)
	if err != nil {
		panic(fmt.Sprintf("invalid card number %s: %v", card, err))
	}
	return sanitized
}
