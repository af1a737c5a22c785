package logger

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Preview returns a string field holding at most limit runes of s. Longer
// values end with "..." and a non-positive limit logs an empty string.
func Preview(key, s string, limit int) zap.Field {
	return zap.String(key, clip(strings.TrimSpace(s), limit))
}

func clip(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}
