package model

import (
	"fmt"
	"strconv"
	"strings"
)

// AmountUnit is the number of native units per whole coin.
const AmountUnit = 100_000_000

const amountDecimals = 8

// ParseLegacyAmount converts a fixed-point decimal string ("4.00000000")
// into native units. At most eight fractional digits are accepted.
func ParseLegacyAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	whole := s
	frac := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole, frac = s[:idx], s[idx+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > amountDecimals {
		return 0, fmt.Errorf("amount %q has more than %d decimals", s, amountDecimals)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}

	fracUnits := int64(0)
	if frac != "" {
		padded := frac + strings.Repeat("0", amountDecimals-len(frac))
		fracUnits, err = strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse amount %q: %w", s, err)
		}
	}

	value := units*AmountUnit + fracUnits
	if negative {
		value = -value
	}
	return value, nil
}

// FormatLegacyAmount renders native units as the fixed eight-decimal string
// used by the legacy encoding.
func FormatLegacyAmount(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%08d", sign, v/AmountUnit, v%AmountUnit)
}

// FormatLegacyTimestamp renders a transaction timestamp with the two-decimal
// precision the legacy encoding stores.
func FormatLegacyTimestamp(ts float64) string {
	return strconv.FormatFloat(ts, 'f', 2, 64)
}
