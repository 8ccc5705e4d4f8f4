package utils

import (
	"strconv"
	"strings"
)

// IsQueryRune reports whether r may appear in a board query: a-z, A-Z or a wildcard marker
func IsQueryRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '?' || r == '*'
}

// IsValidQuery checks if input should be sent to the lexicon.
// Empty strings and anything outside letters and wildcards are rejected.
func IsValidQuery(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !IsQueryRune(r) {
			return false
		}
	}
	return true
}

// IsOnlyWildcards reports whether every rune in s is a wildcard marker
func IsOnlyWildcards(s string) bool {
	if len(s) == 0 {
		return false
	}
	return strings.Trim(s, "?*") == ""
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	str := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(char)
	}
	return b.String()
}
