// Package input normalizes the minutes and seconds fields and persists the
// last-used values.
package input

import "unicode"

// Field bounds.
const (
	MinMinutes = 0
	MaxMinutes = 999
	MinSeconds = 0
	MaxSeconds = 59
)

// ClampInt parses the leading decimal integer of raw and clamps it to
// [min, max]. Anything without leading digits parses as 0. Leading
// whitespace and a sign are accepted; parsing stops at the first non-digit,
// so "12abc" is 12 and "4.9" is 4.
func ClampInt(raw string, min, max int) int {
	n := parseLeadingInt(raw)
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// TotalSeconds combines the two raw field values into a duration in seconds.
func TotalSeconds(minutesRaw, secondsRaw string) int {
	m := ClampInt(minutesRaw, MinMinutes, MaxMinutes)
	s := ClampInt(secondsRaw, MinSeconds, MaxSeconds)
	return m*60 + s
}

// saturate caps the magnitude while accumulating digits so huge inputs
// clamp instead of overflowing.
const saturate = 1 << 40

func parseLeadingInt(raw string) int {
	rs := []rune(raw)
	i := 0
	for i < len(rs) && unicode.IsSpace(rs[i]) {
		i++
	}

	neg := false
	if i < len(rs) && (rs[i] == '+' || rs[i] == '-') {
		neg = rs[i] == '-'
		i++
	}

	n, digits := 0, 0
	for ; i < len(rs) && rs[i] >= '0' && rs[i] <= '9'; i++ {
		digits++
		if n < saturate {
			n = n*10 + int(rs[i]-'0')
		}
	}
	if digits == 0 {
		return 0
	}
	if neg {
		return -n
	}
	return n
}
