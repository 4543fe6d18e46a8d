package describe

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxAltTextLen is the accessibility guideline ceiling for alt text.
const maxAltTextLen = 125

// AltText shapes a generated description into alt text: word-boundary
// truncation, then a context suffix, capped at maxAltTextLen overall.
func AltText(description string, slideNumber, imageNumber int, context string) string {
	desc := strings.TrimSpace(description)

	if len(desc) > maxAltTextLen {
		desc = truncateAtWord(desc, maxAltTextLen-5) + "..."
	}

	var alt string
	if context != "" {
		alt = fmt.Sprintf("%s - %s", desc, context)
	} else {
		alt = fmt.Sprintf("%s - Image %d on slide %d", desc, imageNumber, slideNumber)
	}

	if len(alt) > maxAltTextLen {
		alt = truncateBytes(alt, maxAltTextLen-3) + "..."
	}

	return alt
}

// truncateBytes cuts at a byte limit without splitting a UTF-8 sequence.
func truncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// truncateAtWord keeps whole words up to limit characters.
func truncateAtWord(s string, limit int) string {
	words := strings.Fields(s)
	var out string
	for _, word := range words {
		candidate := out
		if candidate != "" {
			candidate += " "
		}
		candidate += word
		if len(candidate) > limit {
			break
		}
		out = candidate
	}
	if out == "" && len(s) > limit {
		return truncateBytes(s, limit)
	}
	return out
}
