package session

import (
	"fmt"
	"regexp"
)

// ValidationError is a client-side, field-level failure. It is resolved
// before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const MinPasswordLength = 6

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var codeRe = regexp.MustCompile(`^\d{6}$`)

// ValidateEmail checks presence and basic shape.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRe.MatchString(email) {
		return &ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword enforces the minimum length.
func ValidatePassword(password string) error {
	if password == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < MinPasswordLength {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
		}
	}
	return nil
}

// ValidateResetCode requires exactly six digits, checked before any
// network call is attempted.
func ValidateResetCode(code string) error {
	if !codeRe.MatchString(code) {
		return &ValidationError{Field: "code", Message: "code must be exactly 6 digits"}
	}
	return nil
}

// ValidateRequired rejects an empty field.
func ValidateRequired(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Message: field + " is required"}
	}
	return nil
}
