package valueobject

import (
	"errors"
	"strings"
)

// PostalCodeDigits is the length of a Brazilian CEP
const PostalCodeDigits = 8

// ErrInvalidPostalCode is returned when a value does not hold exactly eight digits
var ErrInvalidPostalCode = errors.New("postal code must have exactly 8 digits")

// PostalCode is a sanitized 8-digit Brazilian postal code (CEP)
type PostalCode string

// SanitizePostalCode removes every non-digit character
func SanitizePostalCode(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NewPostalCode sanitizes input and requires exactly eight digits to remain
func NewPostalCode(input string) (PostalCode, error) {
	digits := SanitizePostalCode(input)
	if len(digits) != PostalCodeDigits {
		return "", ErrInvalidPostalCode
	}
	return PostalCode(digits), nil
}

// String returns the eight digits
func (p PostalCode) String() string {
	return string(p)
}

// Formatted returns the code as NNNNN-NNN
func (p PostalCode) Formatted() string {
	return FormatPostalCodeInput(string(p))
}

// FormatPostalCodeInput applies the input mask of the postal code field:
// non-digits are dropped, digits past the eighth are ignored and a hyphen is
// inserted once more than five digits are present.
func FormatPostalCodeInput(input string) string {
	digits := SanitizePostalCode(input)
	if len(digits) > PostalCodeDigits {
		digits = digits[:PostalCodeDigits]
	}
	if len(digits) <= 5 {
		return digits
	}
	return digits[:5] + "-" + digits[5:]
}

// IsPostalCodeComplete reports whether the masked input holds a full CEP
func IsPostalCodeComplete(input string) bool {
	return len(SanitizePostalCode(input)) == PostalCodeDigits
}
