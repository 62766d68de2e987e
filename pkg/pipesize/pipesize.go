// Package pipesize converts free-text nominal pipe and conduit size tokens
// into comparable positions on the standard nominal-size scale.
package pipesize

import (
	"math"
	"strconv"
	"strings"
)

// nominalScale is the standard nominal pipe size ladder in inches. An
// ordinal is an index into this ladder, so "one size apart" means adjacent
// rungs regardless of how far apart the sizes are in inches.
var nominalScale = []float64{
	0.125, 0.25, 0.375, 0.5, 0.75,
	1, 1.25, 1.5, 2, 2.5,
	3, 3.5, 4, 5, 6,
	8, 10, 12, 14, 16,
	18, 20, 24, 30, 36, 42, 48,
}

// Parse converts a size token to its ordinal position on the nominal scale.
// It handles:
//   - plain integers: "2"
//   - decimals: "0.75"
//   - mixed fractions with a hyphen or space separator: "1-1/2", "1 1/2"
//   - bare fractions: "3/4"
//   - any of the above with a trailing inch mark: `2-1/2"`
//
// Parse fails (ok=false) on empty, non-numeric, non-positive, or
// unparseable fraction input. Callers must treat failure as "not
// comparable", never as equal or different.
//
// Sizes between rungs interpolate linearly; sizes beyond either end of the
// scale extrapolate with the terminal gap, so ordering always holds.
func Parse(token string) (float64, bool) {
	s := strings.TrimSpace(token)
	s = strings.TrimSuffix(s, `"`)
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	inches, ok := parseInches(s)
	if !ok || inches <= 0 {
		return 0, false
	}

	return ordinal(inches), true
}

// Difference returns how many whole size steps apart two size tokens are on
// the nominal scale. ok=false propagates a parse failure from either input.
func Difference(a, b string) (int, bool) {
	oa, ok := Parse(a)
	if !ok {
		return 0, false
	}
	ob, ok := Parse(b)
	if !ok {
		return 0, false
	}
	return int(math.Round(math.Abs(oa - ob))), true
}

// parseInches evaluates a cleaned size token to inches. Mixed fractions are
// recognized by a hyphen or space separating the whole part from a fraction.
func parseInches(s string) (float64, bool) {
	if idx := strings.IndexAny(s, "- "); idx > 0 && strings.Contains(s[idx+1:], "/") {
		whole, err := strconv.ParseFloat(s[:idx], 64)
		if err != nil {
			return 0, false
		}
		frac, ok := parseFraction(s[idx+1:])
		if !ok {
			return 0, false
		}
		return whole + frac, true
	}

	if strings.Contains(s, "/") {
		return parseFraction(s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseFraction evaluates "n/d" with no expression machinery beyond one
// division.
func parseFraction(s string) (float64, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, false
	}

	num, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, false
	}
	den, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || den == 0 {
		return 0, false
	}

	return num / den, true
}

// ordinal locates inches on the nominal scale. Exact rungs map to their
// index; everything else interpolates between the surrounding rungs.
func ordinal(inches float64) float64 {
	last := len(nominalScale) - 1

	if inches <= nominalScale[0] {
		gap := nominalScale[1] - nominalScale[0]
		return (inches - nominalScale[0]) / gap
	}
	if inches >= nominalScale[last] {
		gap := nominalScale[last] - nominalScale[last-1]
		return float64(last) + (inches-nominalScale[last])/gap
	}

	for i := 0; i < last; i++ {
		if inches <= nominalScale[i+1] {
			gap := nominalScale[i+1] - nominalScale[i]
			return float64(i) + (inches-nominalScale[i])/gap
		}
	}
	return float64(last)
}
