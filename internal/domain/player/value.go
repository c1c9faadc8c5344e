package player

import (
	"math"
	"strconv"
	"strings"
)

// ParseValue reads market values such as "€85.5M", "900K" or "1200000".
// Characters other than digits, '.', 'M' and 'K' are discarded. An 'M' anywhere
// multiplies by one million, otherwise a 'K' multiplies by one thousand.
// Unreadable input yields 0.
func ParseValue(raw string) int64 {
	var cleaned strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == 'M' || r == 'K' {
			cleaned.WriteRune(r)
		}
	}
	value := cleaned.String()

	multiplier := 1.0
	switch {
	case strings.Contains(value, "M"):
		multiplier = 1_000_000
	case strings.Contains(value, "K"):
		multiplier = 1_000
	}

	digits := strings.NewReplacer("M", "", "K", "").Replace(value)
	number, ok := leadingFloat(digits)
	if !ok {
		return 0
	}
	return int64(math.Round(number * multiplier))
}

// leadingFloat parses the longest numeric prefix, allowing a single decimal point.
func leadingFloat(s string) (float64, bool) {
	end := 0
	seenDot := false
	seenDigit := false
	for end < len(s) {
		c := s[end]
		if c == '.' {
			if seenDot {
				break
			}
			seenDot = true
		} else {
			seenDigit = true
		}
		end++
	}
	if !seenDigit {
		return 0, false
	}

	n, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
