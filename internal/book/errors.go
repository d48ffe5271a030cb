package book

import (
	"errors"
	"fmt"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrNotFound     = errors.New("book: not found")
	ErrInvalidPhone = errors.New("book: invalid phone number")
	ErrEmptyName    = errors.New("book: contact name cannot be empty")
)

// Reason classifies why a phone candidate was rejected.
type Reason string

const (
	// ReasonWrongLength means the candidate is not exactly PhoneLength characters.
	ReasonWrongLength Reason = "wrong length"
	// ReasonNonDigit means the candidate contains a character outside 0-9.
	ReasonNonDigit Reason = "non-digit"
)

// ValidationError reports a phone candidate that failed validation.
// It matches ErrInvalidPhone via errors.Is.
type ValidationError struct {
	Reason Reason
	Value  string
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonWrongLength:
		return fmt.Sprintf("book: phone %q: must contain %d digits", e.Value, PhoneLength)
	case ReasonNonDigit:
		return fmt.Sprintf("book: phone %q: must contain only digits", e.Value)
	default:
		return fmt.Sprintf("book: phone %q: %s", e.Value, e.Reason)
	}
}

// Unwrap lets errors.Is(err, ErrInvalidPhone) match any ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidPhone
}

// IsReason reports whether err is a ValidationError with the given reason.
func IsReason(err error, reason Reason) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Reason == reason
}

func phoneNotFound(phone string) error {
	return fmt.Errorf("%w: phone %q", ErrNotFound, phone)
}

func recordNotFound(name string) error {
	return fmt.Errorf("%w: record %q", ErrNotFound, name)
}
