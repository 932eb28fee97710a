package avatar

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// strippable reports whether r is a separator, number, symbol, punctuation or
// control rune. Only letters and marks survive; unassigned code points, which
// unicode.C does not cover, are dropped as well.
func strippable(r rune) bool {
	return !unicode.In(r, unicode.L, unicode.M)
}

// NormalizeName strips every separator, number, symbol, punctuation and
// control rune from raw and upper-cases what is left. It returns false when
// nothing usable remains.
func NormalizeName(raw string) (string, bool) {
	kept := strings.Map(func(r rune) rune {
		if strippable(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	if kept == "" {
		return "", false
	}
	// Casers carry state, so each call gets its own. Full case mapping turns
	// "ß" into "SS".
	return cases.Upper(language.Und).String(kept), true
}

// Initials returns the first n code points of name. n below 1 counts as 1 and
// n above the rune count of name is clamped.
func Initials(name string, n int) string {
	n = clampLen(name, n)
	i := 0
	for pos := range name {
		if i == n {
			return name[:pos]
		}
		i++
	}
	return name
}

// clampLen bounds n to [1, runes in name]. An empty name yields 0.
func clampLen(name string, n int) int {
	if n < 1 {
		n = 1
	}
	if limit := utf8.RuneCountInString(name); n > limit {
		n = limit
	}
	return n
}

// IsLatin reports whether s contains at least one ASCII letter.
func IsLatin(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			return true
		}
	}
	return false
}
