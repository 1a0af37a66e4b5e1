// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}

// ValidatePassword checks if a password meets minimum requirements
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}

	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	return nil
}

// ValidateName checks a display name
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("name cannot exceed 100 characters")
	}
	return nil
}

// ValidateLength checks an optional free-text field against a maximum length.
func ValidateLength(field, value string, max int) error {
	if len(value) > max {
		return fmt.Errorf("%s cannot exceed %d characters", field, max)
	}
	return nil
}

// ValidateRequired checks a required free-text field against a maximum length.
func ValidateRequired(field, value string, max int) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	return ValidateLength(field, value, max)
}
