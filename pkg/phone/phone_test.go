package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/phone"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		countryCode string
		input       string
		expected    string
	}{
		{
			name:        "plain national number",
			countryCode: "91",
			input:       "9876543210",
			expected:    "+919876543210",
		},
		{
			name:        "country code with plus prefix",
			countryCode: "+91",
			input:       "9876543210",
			expected:    "+919876543210",
		},
		{
			name:        "strips spaces and dashes",
			countryCode: "91",
			input:       "98765 432-10",
			expected:    "+919876543210",
		},
		{
			name:        "strips parentheses and dots",
			countryCode: "1",
			input:       "(555) 123.4567",
			expected:    "+15551234567",
		},
		{
			name:        "already international keeps own country code",
			countryCode: "91",
			input:       "+44 7700 900123",
			expected:    "+447700900123",
		},
		{
			name:        "leading whitespace before plus",
			countryCode: "91",
			input:       "  +919876543210",
			expected:    "+919876543210",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := phone.Normalize(tt.countryCode, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestNormalizeErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty number", func(t *testing.T) {
		t.Parallel()

		_, err := phone.Normalize("91", "")
		assert.ErrorIs(t, err, phone.ErrEmptyNumber)
	})

	t.Run("formatting only", func(t *testing.T) {
		t.Parallel()

		_, err := phone.Normalize("91", " ()- ")
		assert.ErrorIs(t, err, phone.ErrEmptyNumber)
	})

	t.Run("empty country code", func(t *testing.T) {
		t.Parallel()

		_, err := phone.Normalize("", "9876543210")
		assert.ErrorIs(t, err, phone.ErrInvalidCountryCode)
	})

	t.Run("country code without digits", func(t *testing.T) {
		t.Parallel()

		_, err := phone.Normalize("+", "9876543210")
		assert.ErrorIs(t, err, phone.ErrInvalidCountryCode)
	})
}

func TestMask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "international number",
			input:    "+919876543210",
			expected: "********3210",
		},
		{
			name:     "formatted number",
			input:    "(555) 123-4567",
			expected: "******4567",
		},
		{
			name:     "short number fully masked",
			input:    "123",
			expected: "***",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, phone.Mask(tt.input))
		})
	}
}
