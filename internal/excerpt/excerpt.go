// Package excerpt derives plain-text descriptions from Markdown bodies.
package excerpt

import (
	"regexp"
	"strings"
)

// markers is the Markdown punctuation that gets deleted outright. This is a
// lossy pass, not a parser: a link's URL survives as plain text once its
// brackets are stripped, which is acceptable for meta descriptions.
var markers = regexp.MustCompile("[#*_~`>\\[\\]]")

var newlineRun = regexp.MustCompile(`\n+`)

// Summarize strips Markdown markers from s, collapses newline runs into
// single spaces, trims, and truncates to maxLen characters. An ellipsis is
// appended only when truncation actually dropped text; empty input yields
// the empty string.
func Summarize(s string, maxLen int) string {
	if s == "" {
		return ""
	}
	out := markers.ReplaceAllString(s, "")
	out = newlineRun.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)
	if maxLen > 0 {
		if r := []rune(out); len(r) > maxLen {
			out = string(r[:maxLen]) + "..."
		}
	}
	return out
}
