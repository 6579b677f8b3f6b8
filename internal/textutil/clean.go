package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Clean trims surrounding whitespace and normalizes the value to NFC.
func Clean(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if norm.NFC.IsNormalString(value) {
		return value
	}
	return norm.NFC.String(value)
}

// StripBOM removes a leading UTF-8 byte order mark.
func StripBOM(value string) string {
	return strings.TrimPrefix(value, "\ufeff")
}
