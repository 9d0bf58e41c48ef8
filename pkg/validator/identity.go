package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyEmployeeID indicates the employee id is empty
	ErrEmptyEmployeeID = errors.New("employee id cannot be empty")

	// ErrInvalidEmployeeID indicates the employee id contains invalid characters
	ErrInvalidEmployeeID = errors.New("employee id may only contain letters, digits and hyphens")

	// ErrEmptyContactNumber indicates the contact number is empty
	ErrEmptyContactNumber = errors.New("contact number cannot be empty")

	// ErrInvalidContactNumber indicates the contact number is not a plausible phone number
	ErrInvalidContactNumber = errors.New("contact number must be 7 to 15 digits")

	// ErrEmptyEmail indicates the email address is empty
	ErrEmptyEmail = errors.New("email address cannot be empty")

	// ErrInvalidEmail indicates the email address is malformed
	ErrInvalidEmail = errors.New("email address is not valid")
)

var (
	employeeIDRegex = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	digitsRegex     = regexp.MustCompile(`^\d+$`)
	emailRegex      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// IdentityValidator validates the three unique employee identity fields
// used for duplicate detection.
type IdentityValidator struct{}

// NewIdentityValidator creates a new identity validator instance
func NewIdentityValidator() *IdentityValidator {
	return &IdentityValidator{}
}

// ValidateEmployeeID validates an employee id such as "E100" or "EMP-2041".
// Returns the trimmed id and an error if invalid.
func (v *IdentityValidator) ValidateEmployeeID(empID string) (string, error) {
	trimmed := strings.TrimSpace(empID)
	if trimmed == "" {
		return "", ErrEmptyEmployeeID
	}
	if !employeeIDRegex.MatchString(trimmed) {
		return "", ErrInvalidEmployeeID
	}
	return trimmed, nil
}

// ValidateContactNumber validates a contact number.
// Accepts separators and an optional leading +, which are stripped.
// Returns the sanitized number (digits only) and an error if invalid.
func (v *IdentityValidator) ValidateContactNumber(number string) (string, error) {
	if strings.TrimSpace(number) == "" {
		return "", ErrEmptyContactNumber
	}

	sanitized := v.SanitizeContactNumber(number)
	if !digitsRegex.MatchString(sanitized) {
		return "", ErrInvalidContactNumber
	}
	if len(sanitized) < 7 || len(sanitized) > 15 {
		return "", ErrInvalidContactNumber
	}

	return sanitized, nil
}

// SanitizeContactNumber removes common separators from a contact number
func (v *IdentityValidator) SanitizeContactNumber(number string) string {
	number = strings.TrimSpace(number)
	number = strings.ReplaceAll(number, " ", "")
	number = strings.ReplaceAll(number, "-", "")
	number = strings.ReplaceAll(number, "(", "")
	number = strings.ReplaceAll(number, ")", "")
	number = strings.ReplaceAll(number, "+", "")
	number = strings.ReplaceAll(number, ".", "")
	return number
}

// ValidateEmail validates a personal email address.
// Returns the trimmed, lowercased address and an error if invalid.
func (v *IdentityValidator) ValidateEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", ErrEmptyEmail
	}
	if !emailRegex.MatchString(trimmed) {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}
