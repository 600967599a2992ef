// Package sanitizer normalizes untrusted user input before validation and
// storage.
package sanitizer

import (
	"regexp"
	"strings"
)

var dotRegex = regexp.MustCompile(`\.{2,}`)

// NormalizeEmail lowercases and trims an email address and consolidates
// consecutive dots in the local part. Inputs that are not shaped like an
// email are returned trimmed and lowercased so validation can reject them.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	local := dotRegex.ReplaceAllString(parts[0], ".")
	local = strings.Trim(local, ".")

	return local + "@" + parts[1]
}

// TrimString collapses surrounding whitespace on a free-form field.
func TrimString(s string) string {
	return strings.TrimSpace(s)
}
