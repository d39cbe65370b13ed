package helpers

import "strings"

// LastSplitPart returns the final part of target split by separator.
// When the separator does not occur, the whole string comes back.
func LastSplitPart(target, separator string) string {
	parts := strings.Split(target, separator)
	return strings.TrimSpace(parts[len(parts)-1])
}

// TruncateRunes shortens s to at most limit runes
func TruncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
