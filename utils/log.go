package utils

import (
	"strings"
	"unicode"
)

func SanitizeLogMessage(msg string) string {
	var sb strings.Builder
	for _, r := range msg {
		if r == 10 || r == 9 {
			sb.WriteRune(r)
		} else if unicode.IsPrint(r) || unicode.IsGraphic(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// SanitizeLogFilename truncates and sanitizes user-supplied filenames
// before they are written to logs.
func SanitizeLogFilename(name string) string {
	if len(name) > 100 {
		name = name[:100] + "..."
	}
	return SanitizeLogMessage(name)
}
