package grading

import (
	"math"
	"strconv"
	"strings"
)

// parseNumber accepts only a whole trimmed number; "3 apples" is text.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// numericMatch compares two numbers within an absolute tolerance. ok is false
// when either side does not parse, so callers can fall back to text.
func numericMatch(response, accepted string, tolerance float64) (match, ok bool) {
	rv, rOK := parseNumber(response)
	av, aOK := parseNumber(accepted)
	if !rOK || !aOK {
		return false, false
	}
	return math.Abs(rv-av) <= tolerance, true
}
