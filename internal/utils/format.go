package utils

import (
	"strconv"
	"strings"
)

// FormatFloat prints f with 10 decimals and trims trailing zeros and the
// dot: 1.5 -> "1.5", 2.0 -> "2".
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 10, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Sanitize drops control characters except tab/CR/LF and turns NUL into a
// space, so values are safe for CSV and SQLite.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == 0:
			return ' '
		case r >= ' ', r == '\t', r == '\n', r == '\r':
			return r
		default:
			return -1
		}
	}, s)
}
