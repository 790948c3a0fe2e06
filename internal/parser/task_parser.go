package parser

import (
	"regexp"
	"strings"
)

// ParsedCheckIn represents a check-in line parsed from natural syntax
type ParsedCheckIn struct {
	Task string
	Tags []string
}

// ParseCheckIn extracts tags from a check-in description using natural syntax
// Syntax: "Revue GovWin #govwin,proposals" or "Build Android #mobile #release"
func ParseCheckIn(input string) ParsedCheckIn {
	result := ParsedCheckIn{
		Task: input,
		Tags: []string{},
	}

	// Extract tags (#tag1,tag2 or #tag1 #tag2)
	tagRegex := regexp.MustCompile(`#([a-zA-Z0-9_,-]+)`)
	tagMatches := tagRegex.FindAllStringSubmatch(input, -1)
	for _, match := range tagMatches {
		if len(match) > 1 {
			// Split by comma in case of #tag1,tag2
			tagGroup := strings.Split(match[1], ",")
			for _, tag := range tagGroup {
				tag = strings.TrimSpace(tag)
				if tag != "" {
					result.Tags = append(result.Tags, tag)
				}
			}
		}
	}
	// Remove from task text
	input = tagRegex.ReplaceAllString(input, "")

	// Clean up the task text (remove extra spaces)
	result.Task = strings.Join(strings.Fields(input), " ")

	return result
}
