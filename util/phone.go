package util

import (
	"fmt"
	"regexp"
	"strings"
)

// Tanzanian phone shapes after whitespace/punctuation stripping:
// international +255XXXXXXXXX (9 subscriber digits) or local 0XXXXXXXXX.
var (
	intlPhonePattern  = regexp.MustCompile(`^\+?255\d{9}$`)
	localPhonePattern = regexp.MustCompile(`^0\d{9}$`)
	phoneStripPattern = regexp.MustCompile(`[\s\-().]+`)
	nonDigitPattern   = regexp.MustCompile(`\D`)
)

// ValidPhone reports whether the input matches a Tanzanian phone format,
// international (+255 XX XXX XXXX) or local (0XX XXX XXXX), ignoring
// whitespace and punctuation.
func ValidPhone(phone string) bool {
	stripped := phoneStripPattern.ReplaceAllString(strings.TrimSpace(phone), "")
	return intlPhonePattern.MatchString(stripped) || localPhonePattern.MatchString(stripped)
}

// NormalizePhone converts a Tanzanian phone number in either accepted format
// to the canonical international form "+255 XX XXX XXXX". The second return
// value is false when the input matches neither format; such numbers are
// dropped by callers, never retained as-is.
func NormalizePhone(phone string) (string, bool) {
	if !ValidPhone(phone) {
		return "", false
	}

	digits := nonDigitPattern.ReplaceAllString(phone, "")
	switch {
	case len(digits) == 10 && strings.HasPrefix(digits, "0"):
		digits = "255" + digits[1:]
	case len(digits) == 12 && strings.HasPrefix(digits, "255"):
		// already in international digit form
	default:
		return "", false
	}

	return fmt.Sprintf("+255 %s %s %s", digits[3:5], digits[5:8], digits[8:12]), true
}
