package util

import (
	"regexp"
	"strings"
)

var (
	reSpaces  = regexp.MustCompile(`\s+`)
	reNonName = regexp.MustCompile(`[^a-z0-9 ]`)
)

// CollapseSpaces trims the input and squeezes interior whitespace
// (including non-breaking spaces) to single spaces.
func CollapseSpaces(input string) string {
	s := strings.ReplaceAll(input, "\u00a0", " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// NormalizeName lowers the input, strips punctuation and collapses
// whitespace. "Camel-Brown " and "camel brown" normalize identically.
func NormalizeName(input string) string {
	s := strings.ToLower(CollapseSpaces(input))
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "/", " ")
	s = reNonName.ReplaceAllString(s, "")
	return CollapseSpaces(s)
}

// NormalizeStyle upper-cases and whitespace-trims a style number for
// the relaxed lookup pass. Apparel style numbers vary in casing and
// padding in the wild.
func NormalizeStyle(input string) string {
	return strings.ToUpper(CollapseSpaces(input))
}

// PadCode canonicalizes a numeric colorway code to three digits, so
// "10" and "010" compare equal.
func PadCode(digits string) string {
	d := strings.TrimSpace(digits)
	for len(d) < 3 {
		d = "0" + d
	}
	return d
}

// IsDigits reports whether the string is non-empty and all ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func StringPtr(v string) *string { return &v }

func FloatPtr(v float64) *float64 { return &v }

func BoolPtr(v bool) *bool { return &v }
