package core

import (
	"math"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Round2 rounds to 2 decimal places. Applied to every average and success rate
// crossing the service boundary so that the stats and transcript views agree
// byte-for-byte.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
