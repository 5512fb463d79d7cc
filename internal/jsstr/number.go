package jsstr

import (
	"strconv"
	"strings"
)

// ParseNumber decodes the spelling of a numeric literal: decimal, hex,
// octal, binary and legacy octal forms, with optional _ separators.
func ParseNumber(raw string) (float64, bool) {
	clean := strings.ReplaceAll(raw, "_", "")
	if clean == "" {
		return 0, false
	}

	if len(clean) > 2 && clean[0] == '0' {
		base := 0
		switch clean[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			return parseInteger(clean[2:], base)
		}
	}

	if len(clean) > 1 && clean[0] == '0' && isDigits(clean[1:]) {
		if strings.ContainsAny(clean, "89") {
			return parseInteger(clean[1:], 10)
		}
		return parseInteger(clean[1:], 8)
	}

	value, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

func parseInteger(digits string, base int) (float64, bool) {
	if digits == "" {
		return 0, false
	}

	var value float64
	for _, ch := range strings.ToLower(digits) {
		var digit int
		switch {
		case ch >= '0' && ch <= '9':
			digit = int(ch - '0')
		case ch >= 'a' && ch <= 'f':
			digit = int(ch-'a') + 10
		default:
			return 0, false
		}
		if digit >= base {
			return 0, false
		}
		value = value*float64(base) + float64(digit)
	}

	return value, true
}

func isDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}

	return s != ""
}
