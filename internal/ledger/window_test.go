package ledger

import (
	"testing"
	"time"
)

func TestDayKeyUsesReferenceTimezone(t *testing.T) {
	tz, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("failed to load timezone: %v", err)
	}

	lateUTC := time.Date(2024, 12, 8, 23, 30, 0, 0, time.UTC)
	if key := DayKey(lateUTC, time.UTC); key != "2024-12-08" {
		t.Errorf("expected 2024-12-08 in UTC, got %s", key)
	}
	if key := DayKey(lateUTC, tz); key != "2024-12-09" {
		t.Errorf("expected 2024-12-09 in Paris, got %s", key)
	}
}

func TestDayWindowCoversWholeDay(t *testing.T) {
	noon := time.Date(2024, 12, 9, 12, 34, 56, 0, time.UTC)
	start, end := DayWindow(noon, time.UTC)

	if !start.Equal(time.Date(2024, 12, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected day start %v", start)
	}
	if !end.Equal(time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected day end %v", end)
	}
}

func TestWeekWindowStartsMonday(t *testing.T) {
	// 2024-12-09 is a Monday
	monday := time.Date(2024, 12, 9, 0, 0, 0, 0, time.UTC)

	for days := 0; days < 7; days++ {
		start, end := WeekWindow(monday.AddDate(0, 0, days).Add(15*time.Hour), time.UTC)
		if !start.Equal(monday) {
			t.Errorf("day offset %d: expected week start %v, got %v", days, monday, start)
		}
		if !end.Equal(monday.AddDate(0, 0, 7)) {
			t.Errorf("day offset %d: expected week end %v, got %v", days, monday.AddDate(0, 0, 7), end)
		}
	}
}

func TestWeekWindowOnSunday(t *testing.T) {
	// Sundays belong to the week that started the previous Monday
	sunday := time.Date(2024, 12, 15, 23, 0, 0, 0, time.UTC)
	start, _ := WeekWindow(sunday, time.UTC)

	if !start.Equal(time.Date(2024, 12, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected week start 2024-12-09, got %v", start)
	}
}
