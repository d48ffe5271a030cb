package book

import "unicode/utf8"

// PhoneLength is the exact number of digits a phone number carries.
const PhoneLength = 10

// Phone is a validated phone number. The zero value is not a valid phone;
// construct one with NewPhone.
type Phone struct {
	value string
}

// NewPhone validates candidate and wraps it. Length is checked before
// content, so "123" reports ReasonWrongLength and "12345abcde" reports
// ReasonNonDigit.
func NewPhone(candidate string) (Phone, error) {
	if utf8.RuneCountInString(candidate) != PhoneLength {
		return Phone{}, &ValidationError{Reason: ReasonWrongLength, Value: candidate}
	}
	for i := 0; i < len(candidate); i++ {
		if c := candidate[i]; c < '0' || c > '9' {
			return Phone{}, &ValidationError{Reason: ReasonNonDigit, Value: candidate}
		}
	}
	return Phone{value: candidate}, nil
}

// Value returns the digits exactly as supplied to NewPhone.
func (p Phone) Value() string {
	return p.value
}

func (p Phone) String() string {
	return p.value
}
