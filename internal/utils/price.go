package utils

import (
	"strconv"
	"strings"
)

// ParsePriceValue coerces a price field of unknown shape (number, numeric
// string, pre-formatted string like "1,500,000 AED") into a float.
// Returns false when nothing numeric can be recovered.
func ParsePriceValue(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, v >= 0
	case float32:
		return float64(v), v >= 0
	case int:
		return float64(v), v >= 0
	case int64:
		return float64(v), v >= 0
	case string:
		return parsePriceString(v)
	}
	return 0, false
}

func parsePriceString(s string) (float64, bool) {
	cleaned := strings.Builder{}
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			cleaned.WriteRune(r)
		}
	}
	if cleaned.Len() == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned.String(), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseAmount parses a human-written money amount with an optional
// thousand/million suffix: "2m", "1.5M", "500k", "2 مليون", "500 ألف",
// "2 млн", "500 тыс". Bare numbers pass through unchanged.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, false
	}

	multiplier := 1.0
	suffixes := []struct {
		token string
		mult  float64
	}{
		{"million", 1_000_000},
		{"مليون", 1_000_000},
		{"млн", 1_000_000},
		{"m", 1_000_000},
		{"thousand", 1_000},
		{"ألف", 1_000},
		{"الف", 1_000},
		{"тыс", 1_000},
		{"k", 1_000},
	}
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix.token) {
			multiplier = suffix.mult
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix.token))
			break
		}
	}

	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f * multiplier, true
}

// FormatPrice renders a price for display with thousands separators,
// e.g. 2000000 -> "2,000,000".
func FormatPrice(price float64) string {
	whole := strconv.FormatFloat(price, 'f', 0, 64)
	negative := strings.HasPrefix(whole, "-")
	if negative {
		whole = whole[1:]
	}

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}
