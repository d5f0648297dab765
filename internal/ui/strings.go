package ui

import "strings"

// truncateMiddle shortens a string by removing characters from the middle,
// preserving both the beginning and end. For paths, it preserves file extensions.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}

	ellipsis := []rune("…")

	// Keep the extension visible for file names and paths.
	lastDot := strings.LastIndex(value, ".")
	lastSlash := maxInt(strings.LastIndex(value, "/"), strings.LastIndex(value, "\\"))
	if lastDot > lastSlash && lastDot > 0 {
		ext := []rune(value[lastDot:])
		base := []rune(value[:lastDot])
		baseLimit := limit - len(ext) - len(ellipsis)
		if len(ext) < 10 && len(ext) < limit/2 && baseLimit > 0 && len(base) > baseLimit {
			prefix := baseLimit / 2
			suffix := baseLimit - prefix
			return string(base[:prefix]) + string(ellipsis) + string(base[len(base)-suffix:]) + string(ext)
		}
	}

	keep := limit - len(ellipsis)
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + string(ellipsis) + string(runes[len(runes)-suffix:])
}

// maxInt returns the larger of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
