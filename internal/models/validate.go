package models

import (
	"regexp"
	"strings"

	"github.com/ajitpratap0/zodiac-roster/internal/zodiac"
	"github.com/ajitpratap0/zodiac-roster/pkg/civil"
)

// emailPattern accepts local@domain.tld with no whitespace or extra '@'.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateFirstName rejects empty or whitespace-only names.
func ValidateFirstName(v string) error {
	return validateName(v)
}

// ValidateLastName rejects empty or whitespace-only names.
func ValidateLastName(v string) error {
	return validateName(v)
}

func validateName(v string) error {
	if strings.TrimSpace(v) == "" {
		return ErrEmptyField
	}
	return nil
}

// ValidateEmail accepts an absent or blank email, or one of shape local@domain.tld.
func ValidateEmail(v *string) error {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	if !emailPattern.MatchString(*v) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateBirthDate requires a date that is not after today and not more
// than zodiac.MaxAge years before it.
func ValidateBirthDate(d *civil.Date, today civil.Date) error {
	if d == nil {
		return ErrMissingBirthDate
	}
	if zodiac.IsFutureDate(*d, today) {
		return ErrFutureDate
	}
	if zodiac.ExceedsMaxAge(zodiac.Age(*d, today)) {
		return ErrTooOld
	}
	return nil
}
