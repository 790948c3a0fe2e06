package ledger

import (
	"testing"
	"time"

	"github.com/tride/tride/internal/models"
)

func TestElapsedOpenSessionIsMonotonic(t *testing.T) {
	start := time.Date(2024, 12, 9, 9, 0, 0, 0, time.UTC)
	session := &models.Session{ID: "s1", StartedAt: start}

	var last int64 = -1
	for _, offset := range []time.Duration{0, time.Second, 30 * time.Second, time.Hour, 26 * time.Hour} {
		secs, anomaly := Elapsed(session, start.Add(offset))
		if anomaly {
			t.Errorf("unexpected anomaly at offset %v", offset)
		}
		if secs < last {
			t.Errorf("duration decreased: %d after %d at offset %v", secs, last, offset)
		}
		last = secs
	}
}

func TestElapsedClosedSessionIsConstant(t *testing.T) {
	start := time.Date(2024, 12, 9, 9, 0, 0, 0, time.UTC)
	end := start.Add(65 * time.Second)
	session := &models.Session{ID: "s1", StartedAt: start, EndedAt: &end}

	for _, at := range []time.Time{start, end, end.Add(time.Hour), end.AddDate(0, 0, 7)} {
		secs, anomaly := Elapsed(session, at)
		if anomaly {
			t.Errorf("unexpected anomaly observed at %v", at)
		}
		if secs != 65 {
			t.Errorf("closed session duration changed with observation instant: got %d at %v", secs, at)
		}
	}
}

func TestElapsedClampsNegativeSpan(t *testing.T) {
	start := time.Date(2024, 12, 9, 9, 0, 0, 0, time.UTC)

	// Open session observed before its start (clock skew)
	open := &models.Session{ID: "s1", StartedAt: start}
	secs, anomaly := Elapsed(open, start.Add(-10*time.Second))
	if secs != 0 {
		t.Errorf("expected clamp to 0, got %d", secs)
	}
	if !anomaly {
		t.Error("expected anomaly flag for negative span")
	}

	// Closed session with end before start
	end := start.Add(-time.Minute)
	closed := &models.Session{ID: "s2", StartedAt: start, EndedAt: &end}
	secs, anomaly = Elapsed(closed, start)
	if secs != 0 || !anomaly {
		t.Errorf("expected (0, true) for inverted closed span, got (%d, %v)", secs, anomaly)
	}

	// Seconds recovers silently
	if got := Seconds(closed, start); got != 0 {
		t.Errorf("Seconds should clamp to 0, got %d", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "0s"},
		{-5, "0s"},
		{42, "42s"},
		{60, "1m"},
		{65, "1m 5s"},
		{3600, "1h"},
		{3905, "1h 5m 5s"},
		{7200, "2h"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.secs); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "00:00"},
		{65, "01:05"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3905, "01:05:05"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.secs); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
