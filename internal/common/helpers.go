package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	SUIDecimals = 9 // SUI has 9 decimals (MIST)

	// MistPerSUI is the number of base units in one SUI
	MistPerSUI = 1_000_000_000
)

// MistToSUI converts MIST to SUI string without float precision loss
func MistToSUI(mist uint64) string {
	return formatWithDecimals(mist, SUIDecimals)
}

// SUIToMist converts SUI string to MIST without float precision loss
func SUIToMist(sui string) (uint64, error) {
	return parseWithDecimals(sui, SUIDecimals)
}

// MistToSUIFloat converts MIST to SUI as float64 (display only)
func MistToSUIFloat(mist uint64) float64 {
	return float64(mist) / MistPerSUI
}

// ShortAddress returns the first 6 characters of an address for display
func ShortAddress(address string) string {
	if len(address) <= 6 {
		return address
	}
	return address[:6]
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 9) = "0.024981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := strconv.FormatUint(value, 10)

	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// parseWithDecimals converts decimal string to integer by removing decimal point.
// Digits beyond the given precision are truncated.
// Example: parseWithDecimals("0.024981836", 9) = 24981836
func parseWithDecimals(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, fmt.Errorf("amount must be an unsigned decimal")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	if whole == "" {
		whole = "0"
	}

	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}
	if whole == "0" && len(parts) == 2 && parts[0] == "" && frac == "" {
		return 0, fmt.Errorf("invalid decimal format")
	}

	// Pad or truncate fractional part to exact decimals
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else if len(frac) > decimals {
		frac = frac[:decimals]
	}

	// Combine and parse
	n, err := strconv.ParseUint(whole+frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return n, nil
}
