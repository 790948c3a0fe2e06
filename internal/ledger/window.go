package ledger

import "time"

// DayKey returns the YYYY-MM-DD key of an instant in the reference timezone
func DayKey(t time.Time, tz *time.Location) string {
	return t.In(tz).Format("2006-01-02")
}

// DayWindow returns the [start, end) bounds of the calendar day containing t
// in the reference timezone
func DayWindow(t time.Time, tz *time.Location) (time.Time, time.Time) {
	local := t.In(tz)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz)
	return start, start.AddDate(0, 0, 1)
}

// WeekWindow returns the [Monday 00:00, next Monday 00:00) bounds of the ISO
// week containing t in the reference timezone
func WeekWindow(t time.Time, tz *time.Location) (time.Time, time.Time) {
	local := t.In(tz)

	// time.Weekday counts Sunday as 0; shift so Monday is 0
	offset := (int(local.Weekday()) + 6) % 7
	monday := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz).
		AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 7)
}
