package dispatch

import (
	"regexp"
	"strings"
)

var (
	reMarkdown   = regexp.MustCompile("[*_`#]+")
	reWhitespace = regexp.MustCompile(`[ \t]+`)
)

// Speakable strips markdown decoration and bounds the length of a reply so it
// stays suitable for voice output. Truncation cuts at a sentence boundary when
// one is close enough.
func Speakable(text string, limit int) string {
	text = reMarkdown.ReplaceAllString(text, "")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = reWhitespace.ReplaceAllString(strings.TrimSpace(line), " ")
	}
	text = strings.TrimSpace(strings.Join(lines, "\n"))

	if limit <= 0 || len(text) <= limit {
		return text
	}

	cut := text[:limit]
	if i := strings.LastIndexAny(cut, ".!?"); i > limit/2 {
		return cut[:i+1] + " (content truncated)"
	}
	if i := strings.LastIndexByte(cut, ' '); i > limit/2 {
		cut = cut[:i]
	}
	return cut + "... (content truncated)"
}
