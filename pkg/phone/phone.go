package phone

import (
	"regexp"
	"strings"
)

var nonDigitRegex = regexp.MustCompile(`\D`)

// Normalize converts a raw phone number to international form using the given
// default country code. Formatting characters are stripped; a number that
// already starts with "+" is treated as fully qualified and the default
// country code is not applied.
//
// countryCode may be passed with or without the leading "+".
func Normalize(countryCode, raw string) (string, error) {
	cc := nonDigitRegex.ReplaceAllString(countryCode, "")
	if cc == "" {
		return "", ErrInvalidCountryCode
	}

	trimmed := strings.TrimSpace(raw)
	digits := nonDigitRegex.ReplaceAllString(trimmed, "")
	if digits == "" {
		return "", ErrEmptyNumber
	}

	if strings.HasPrefix(trimmed, "+") {
		return "+" + digits, nil
	}

	return "+" + cc + digits, nil
}

// Mask follows PCI compliance pattern of showing last 4 digits for user recognition.
func Mask(number string) string {
	digits := nonDigitRegex.ReplaceAllString(number, "")
	if len(digits) < 4 {
		return strings.Repeat("*", len(digits))
	}

	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
