package parser

import (
	"regexp"
	"strings"
)

// Matches http/https URLs and bare www. hosts. Trailing punctuation is
// trimmed afterwards so links at the end of a sentence stay clean.
var linkRegex = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)

// ExtractLinks returns every URL found in free text, in order of appearance.
// Duplicates are kept. Bare "www." matches are normalized by prepending
// "https://" so every returned link is openable as-is.
func ExtractLinks(text string) []string {
	matches := linkRegex.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	links := make([]string, 0, len(matches))
	for _, match := range matches {
		match = strings.TrimRight(match, ".,;:!?)")
		if match == "" {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(match), "http") {
			match = "https://" + match
		}
		links = append(links, match)
	}
	return links
}
