package store

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// canonicalMoods is the fixed mood enum. Anything else is mapped to "meh"
// or "ok" depending on length.
var canonicalMoods = map[string]bool{
	"bad":   true,
	"ok":    true,
	"good":  true,
	"great": true,
	"meh":   true,
	"angry": true,
	"tired": true,
	"focus": true,
}

// normalizeMinutes converts raw minute input into a valid duration.
//
// Unparsable input counts as zero, negative values flip positive, an exact
// zero becomes five, and the result is capped at cap. There is no lower
// clamp beyond the zero substitution.
func normalizeMinutes(raw string, cap int) int {
	m, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		m = 0
	}
	if m < 0 {
		m = -m
	}
	if m == 0 {
		m = 5
	}
	if m > cap {
		m = cap
	}
	return m
}

// normalizeMood maps raw mood input onto the canonical enum.
//
// Empty input becomes "ok". Unknown values longer than six characters
// become "meh", shorter ones "ok".
func normalizeMood(raw string) string {
	mo := trimmed(raw)
	if mo == "" {
		return "ok"
	}
	if canonicalMoods[mo] {
		return mo
	}
	if utf8.RuneCountInString(mo) > 6 {
		return "meh"
	}
	return "ok"
}

// trimmed strips surrounding whitespace.
func trimmed(s string) string {
	return strings.TrimSpace(s)
}
