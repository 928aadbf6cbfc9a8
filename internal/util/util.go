// Package util provides common string and hashing helpers.
package util

import (
	"strings"
	"unicode"
)

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// FixEscapeQuotes replaces escaped double quotes ("") with single double quotes (").
func FixEscapeQuotes(s string) string {
	return strings.ReplaceAll(s, `""`, `"`)
}

// CleanArg applies TrimQuotes and FixEscapeQuotes to a raw extension argument.
func CleanArg(s string) string {
	return FixEscapeQuotes(TrimQuotes(s))
}

// NormalizePlate uppercases a plate and drops all whitespace so that
// "  46eek 572 " and "46EEK572" compare equal.
func NormalizePlate(plate string) string {
	var b strings.Builder
	b.Grow(len(plate))
	for _, r := range plate {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Joaat is the Jenkins one-at-a-time hash the game uses for model names.
// Input is lowercased first.
func Joaat(s string) uint32 {
	var h uint32
	for _, c := range []byte(strings.ToLower(s)) {
		h += uint32(c)
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}
