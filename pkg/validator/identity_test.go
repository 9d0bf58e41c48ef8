package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmployeeID(t *testing.T) {
	v := NewIdentityValidator()

	t.Run("Valid IDs", func(t *testing.T) {
		validIDs := []string{
			"E100",
			"EMP-2041",
			"abc123",
			"  E200  ", // surrounding whitespace is trimmed
		}

		for _, id := range validIDs {
			result, err := v.ValidateEmployeeID(id)
			assert.NoError(t, err, "expected %q to be valid", id)
			assert.NotEmpty(t, result)
			assert.NotContains(t, result, " ")
		}
	})

	t.Run("Empty ID", func(t *testing.T) {
		_, err := v.ValidateEmployeeID("   ")
		assert.ErrorIs(t, err, ErrEmptyEmployeeID)
	})

	t.Run("Invalid Characters", func(t *testing.T) {
		invalidIDs := []string{
			"E 100",
			"EMP_2041",
			"E#100",
			"emp.100",
		}

		for _, id := range invalidIDs {
			_, err := v.ValidateEmployeeID(id)
			assert.ErrorIs(t, err, ErrInvalidEmployeeID, "expected %q to be invalid", id)
		}
	})
}

func TestValidateContactNumber(t *testing.T) {
	v := NewIdentityValidator()

	t.Run("Valid Numbers", func(t *testing.T) {
		tests := []struct {
			input    string
			expected string
		}{
			{"9876543210", "9876543210"},
			{"+94 71 234 5678", "94712345678"},
			{"(071) 234-5678", "0712345678"},
			{"071.234.5678", "0712345678"},
		}

		for _, tt := range tests {
			result, err := v.ValidateContactNumber(tt.input)
			assert.NoError(t, err, "expected %q to be valid", tt.input)
			assert.Equal(t, tt.expected, result)
		}
	})

	t.Run("Empty Number", func(t *testing.T) {
		_, err := v.ValidateContactNumber("")
		assert.ErrorIs(t, err, ErrEmptyContactNumber)
	})

	t.Run("Too Short", func(t *testing.T) {
		_, err := v.ValidateContactNumber("123456")
		assert.ErrorIs(t, err, ErrInvalidContactNumber)
	})

	t.Run("Too Long", func(t *testing.T) {
		_, err := v.ValidateContactNumber("1234567890123456")
		assert.ErrorIs(t, err, ErrInvalidContactNumber)
	})

	t.Run("Non Numeric", func(t *testing.T) {
		_, err := v.ValidateContactNumber("98765abc10")
		assert.ErrorIs(t, err, ErrInvalidContactNumber)
	})
}

func TestValidateEmail(t *testing.T) {
	v := NewIdentityValidator()

	t.Run("Valid Emails", func(t *testing.T) {
		result, err := v.ValidateEmail("  John.Doe@Example.COM ")
		assert.NoError(t, err)
		assert.Equal(t, "john.doe@example.com", result)
	})

	t.Run("Empty Email", func(t *testing.T) {
		_, err := v.ValidateEmail("   ")
		assert.ErrorIs(t, err, ErrEmptyEmail)
	})

	t.Run("Invalid Emails", func(t *testing.T) {
		invalidEmails := []string{
			"plainaddress",
			"missing@domain",
			"@no-local.com",
			"two@@example.com",
			"spaces in@example.com",
		}

		for _, email := range invalidEmails {
			_, err := v.ValidateEmail(email)
			assert.ErrorIs(t, err, ErrInvalidEmail, "expected %q to be invalid", email)
		}
	})
}
