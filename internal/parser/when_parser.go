package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseWhen parses a report date argument into midnight of that day in the
// given timezone.
// Supported formats:
// - "today", "yesterday"
// - "X days ago" (e.g., "3 days ago", "1 day ago")
// - dd/mm/yyyy (e.g., "15/12/2024")
// - yyyy-mm-dd (e.g., "2024-12-15")
func ParseWhen(input string, now time.Time, tz *time.Location) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	local := now.In(tz)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz)

	switch input {
	case "", "today":
		return midnight, nil
	case "yesterday":
		return midnight.AddDate(0, 0, -1), nil
	}

	if day, err := parseDaysAgo(input, midnight); err == nil {
		return day, nil
	}
	if day, err := parseDayFormat(input, tz); err == nil {
		return day, nil
	}

	return time.Time{}, fmt.Errorf("invalid date. Use: today, yesterday, X days ago, dd/mm/yyyy or yyyy-mm-dd")
}

// parseDaysAgo parses relative formats like "3 days ago"
func parseDaysAgo(input string, midnight time.Time) (time.Time, error) {
	agoRegex := regexp.MustCompile(`^(\d+)\s+(day|days)\s+ago$`)
	matches := agoRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid relative date format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid number")
	}
	if amount < 0 || amount > 365 {
		return time.Time{}, fmt.Errorf("days must be between 0 and 365")
	}

	return midnight.AddDate(0, 0, -amount), nil
}

// parseDayFormat parses dd/mm/yyyy and yyyy-mm-dd formats
func parseDayFormat(input string, tz *time.Location) (time.Time, error) {
	dateRegex := regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoRegex := regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

	var day, month, year int
	if matches := dateRegex.FindStringSubmatch(input); len(matches) == 4 {
		day, _ = strconv.Atoi(matches[1])
		month, _ = strconv.Atoi(matches[2])
		year, _ = strconv.Atoi(matches[3])
	} else if matches := isoRegex.FindStringSubmatch(input); len(matches) == 4 {
		year, _ = strconv.Atoi(matches[1])
		month, _ = strconv.Atoi(matches[2])
		day, _ = strconv.Atoi(matches[3])
	} else {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}

	parsed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, tz)

	// Check if date is valid (handles leap years, etc.)
	if parsed.Day() != day || parsed.Month() != time.Month(month) || parsed.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}

	return parsed, nil
}
