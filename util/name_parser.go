package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticStripper decomposes to NFD, drops combining marks and recomposes,
// so "Sainte-Thérèse" and "Sainte-Therese" share one identity.
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// IdentityKey derives the deduplication identity of an organization name:
// case-insensitive, whitespace-collapsed, diacritics-stripped, punctuation
// removed. Two records with equal identity keys refer to the same
// organization and must be merged.
func IdentityKey(name string) string {
	stripped, _, err := transform.String(diacriticStripper, name)
	if err != nil {
		stripped = name
	}

	var b strings.Builder
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			// punctuation and whitespace both separate words
			b.WriteRune(' ')
		}
	}

	return CollapseWhitespace(b.String())
}

// NormalizeEmail lowercases and trims an email address and applies a basic
// structural check: exactly one "@", non-empty local and domain parts, and a
// dot somewhere inside the domain. Malformed emails are dropped by callers.
func NormalizeEmail(email string) (string, bool) {
	email = strings.ToLower(strings.TrimSpace(email))

	at := strings.Count(email, "@")
	if at != 1 {
		return "", false
	}

	local, domain, _ := strings.Cut(email, "@")
	if local == "" || domain == "" {
		return "", false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", false
	}

	return email, true
}

// NormalizeAddress trims and collapses whitespace in a free-text location.
// No geocoding is attempted.
func NormalizeAddress(address string) string {
	return CollapseWhitespace(address)
}
