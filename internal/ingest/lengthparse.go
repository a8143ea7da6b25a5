package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// feetInchesFraction matches shop notation like `19' 6 1/2"`, `24'`, or
// `6 1/2` -- optional feet, optional whole inches, optional fraction.
var feetInchesFraction = regexp.MustCompile(`(?i)^\s*(?:(\d+)')?\s*(?:(\d+)(?:\s+|"|$))?(?:(\d+)/(\d+))?\s*"?\s*$`)

// ParseLength accepts either a plain decimal number of inches (the
// ordinary case) or shop feet-inches-fraction notation such as `19' 6 1/2"`,
// the same grammar the teacher's parseAdvancedLength/parseFraction
// recognized for hand-entered cut lists, rewritten here as a float64 inch
// result instead of a rounded int so fractional inches survive into the
// optimizer unrounded.
func ParseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty length")
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	if !strings.ContainsAny(s, "'\"/") {
		return 0, fmt.Errorf("%q is not a recognized length", s)
	}

	m := feetInchesFraction.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%q is not a recognized length", s)
	}

	var inches float64
	matched := false

	if m[1] != "" {
		feet, _ := strconv.Atoi(m[1])
		inches += float64(feet) * 12
		matched = true
	}
	if m[2] != "" {
		whole, _ := strconv.Atoi(m[2])
		inches += float64(whole)
		matched = true
	}
	if m[3] != "" && m[4] != "" {
		num, _ := strconv.ParseFloat(m[3], 64)
		den, _ := strconv.ParseFloat(m[4], 64)
		if den == 0 {
			return 0, fmt.Errorf("%q has a zero-denominator fraction", s)
		}
		inches += num / den
		matched = true
	}

	if !matched {
		return 0, fmt.Errorf("%q is not a recognized length", s)
	}
	return inches, nil
}
