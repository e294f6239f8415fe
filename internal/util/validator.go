package util

import (
	"fmt"
	"net/mail"
	"regexp"
	"time"
)

var serialRe = regexp.MustCompile(`^[A-Za-z0-9._\-]+$`)

// ValidateSerialNumber checks a caller-supplied serial number (non-empty,
// bounded, no whitespace or exotic characters).
func ValidateSerialNumber(serial string) error {
	if serial == "" {
		return fmt.Errorf("serial number is empty")
	}
	if len(serial) > 100 {
		return fmt.Errorf("serial number too long, max 100 characters")
	}
	if !serialRe.MatchString(serial) {
		return fmt.Errorf("serial number may only contain letters, digits, dots, dashes and underscores")
	}
	return nil
}

// ValidateDate validates a YYYY-MM-DD date string.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateEmail validates an email address.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}
	return nil
}

// ValidateRole checks the role is one the system knows.
func ValidateRole(role string) error {
	switch role {
	case "admin", "manager", "staff":
		return nil
	}
	return fmt.Errorf("unknown role %q", role)
}
