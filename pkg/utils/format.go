package utils

import (
	"regexp"
	"strings"
)

var (
	gstinPattern  = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
	nonDigits     = regexp.MustCompile(`[^0-9]`)
)

// IsValidGSTIN reports whether s is a well-formed 15 character GSTIN
func IsValidGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}

// IsValidMobile reports whether s is a 10 digit mobile number
func IsValidMobile(s string) bool {
	return mobilePattern.MatchString(s)
}

// FormatMobile renders a 10 digit number as "XXXXX XXXXX". Other inputs are returned unchanged.
func FormatMobile(s string) string {
	digits := nonDigits.ReplaceAllString(s, "")
	if len(digits) != 10 {
		return s
	}
	return digits[:5] + " " + digits[5:]
}

// NormalizeGSTIN upper-cases and trims a GSTIN before validation
func NormalizeGSTIN(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
