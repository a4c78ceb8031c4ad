package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePrice coerces a price field from the export, where comma is the
// decimal separator. Returns nil when the value is empty or not numeric.
func ParsePrice(input string) *float64 {
	token := strings.TrimSpace(input)
	if token == "" {
		return nil
	}
	token = strings.ReplaceAll(token, "\u00A0", "")
	token = strings.ReplaceAll(token, " ", "")
	if strings.Contains(token, ",") {
		token = strings.ReplaceAll(token, ".", "")
		token = strings.ReplaceAll(token, ",", ".")
	}
	parsed, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// FormatPrice renders a parsed price with exactly two decimals and a comma
// separator, or an empty string for a missing value.
func FormatPrice(value *float64) string {
	if value == nil {
		return ""
	}
	return strings.Replace(fmt.Sprintf("%.2f", *value), ".", ",", 1)
}

func StringPtr(v string) *string { return &v }

func FloatPtr(v float64) *float64 { return &v }
