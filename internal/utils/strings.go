package utils

import (
	"strconv"
	"strings"
)

// PadNumber left-pads the integer part of a decimal number string such as a
// chapter number ("7.5") to width digits. Non-numeric input is returned as is.
func PadNumber(num string, width int) string {
	num = strings.TrimSpace(num)
	if _, err := strconv.ParseFloat(num, 64); err != nil {
		return num
	}

	intPart, decPart, hasDec := strings.Cut(num, ".")

	if padding := width - len(intPart); padding > 0 {
		intPart = strings.Repeat("0", padding) + intPart
	}

	if hasDec {
		return intPart + "." + decPart
	}
	return intPart
}
