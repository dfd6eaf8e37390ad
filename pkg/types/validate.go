package types

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// BirthdayLayout is the time layout for DD.MM.YYYY.
const BirthdayLayout = "02.01.2006"

var (
	phonePattern = regexp.MustCompile(`^\(?\d{3}\)?[\s\-]?\d{3}[\s\-]?\d{4}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// ErrValidation is the parent of every field validation error.
var ErrValidation = errors.New("validation failed")

// Field validation errors. Each one matches ErrValidation under errors.Is.
var (
	ErrInvalidName     = fmt.Errorf("%w: name must not be empty", ErrValidation)
	ErrInvalidPhone    = fmt.Errorf("%w: phone must look like (123) 456-7890 or 1234567890", ErrValidation)
	ErrInvalidEmail    = fmt.Errorf("%w: malformed email", ErrValidation)
	ErrInvalidBirthday = fmt.Errorf("%w: birthday must be a real date in DD.MM.YYYY", ErrValidation)
	ErrInvalidAddress  = fmt.Errorf("%w: address must not be empty", ErrValidation)
)

// IsValidPhone reports whether phone has three digits (optionally in
// parentheses), three digits, and four digits, with an optional space or
// hyphen between the groups.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// IsValidEmail reports whether email has an allowed local part, an @, a
// domain label, a dot, and the remaining domain.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidBirthday reports whether birthday parses as a calendar date in
// DD.MM.YYYY. Dates such as 31.02.2000 are rejected.
func IsValidBirthday(birthday string) bool {
	_, err := time.Parse(BirthdayLayout, birthday)
	return err == nil
}

// ValidatePhone returns ErrInvalidPhone if phone fails IsValidPhone.
func ValidatePhone(phone string) error {
	if !IsValidPhone(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// ValidateEmail returns ErrInvalidEmail if email fails IsValidEmail.
func ValidateEmail(email string) error {
	if !IsValidEmail(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateBirthday returns ErrInvalidBirthday if birthday fails IsValidBirthday.
func ValidateBirthday(birthday string) error {
	if !IsValidBirthday(birthday) {
		return ErrInvalidBirthday
	}
	return nil
}

// ValidateAddress returns ErrInvalidAddress for an empty address.
func ValidateAddress(address string) error {
	if address == "" {
		return ErrInvalidAddress
	}
	return nil
}
