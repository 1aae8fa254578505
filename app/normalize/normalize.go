// Package normalize converts raw scraped strings into typed numeric
// values. Third-party markup and JSON payloads deliver numbers in
// inconsistent shapes ("1,234.56", "+1.39%", "1.23T"), so every
// function here follows a best-effort contract: strip what doesn't
// belong, parse what remains, and return zero instead of an error
// when nothing usable is left.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var scaledMagnitudeRe = regexp.MustCompile(`([\d.]+)\s*([TBM])`)

// ParseFloat converts a raw string to a float64, keeping only digits,
// the decimal point, and a leading minus sign. Unparsable input
// yields 0.0, never an error.
func ParseFloat(raw string) float64 {
	cleaned := cleanNumeric(raw, true)
	if cleaned == "" {
		return 0.0
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0.0
	}
	return value
}

// ParseInt converts a raw string to an int64, keeping only digits.
// The sign is dropped; unparsable input yields 0.
func ParseInt(raw string) int64 {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return 0
	}

	value, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0
	}
	return value
}

// ParseScaledMagnitude expands values like "1.23T" or "456.78B" to an
// absolute integer. The suffix is matched case-sensitively against
// T (10^12), B (10^9) and M (10^6); anything else yields 0.
func ParseScaledMagnitude(raw string) int64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")

	match := scaledMagnitudeRe.FindStringSubmatch(raw)
	if match == nil {
		return 0
	}

	mantissa, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}

	switch match[2] {
	case "T":
		return int64(mantissa * 1_000_000_000_000)
	case "B":
		return int64(mantissa * 1_000_000_000)
	case "M":
		return int64(mantissa * 1_000_000)
	}

	return 0
}

// cleanNumeric strips every character except digits, the decimal
// point, and (when allowSign is set) a single leading minus.
func cleanNumeric(raw string, allowSign bool) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && allowSign && b.Len() == 0:
			b.WriteRune(r)
		}
	}

	s := b.String()
	if s == "-" || s == "." || s == "-." {
		return ""
	}
	return s
}
