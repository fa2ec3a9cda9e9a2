// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

var nikRegex = regexp.MustCompile(`^[0-9]{16}$`)

// ValidateNIK checks a national identity number. NIK is optional on intake,
// but when supplied it must be exactly 16 digits.
func ValidateNIK(nik string) bool {
	return nikRegex.MatchString(nik)
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
