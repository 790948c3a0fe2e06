package ledger

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tride/tride/internal/models"
)

// Elapsed returns the whole elapsed seconds of a session observed at the
// given instant. Closed sessions measure start to end regardless of the
// instant; open sessions measure start to the instant and must be recomputed
// on every call for a live display. The second return flags a clock anomaly:
// a negative raw span, clamped to zero instead of failing.
func Elapsed(s *models.Session, at time.Time) (int64, bool) {
	end := at
	if s.EndedAt != nil {
		end = *s.EndedAt
	}

	secs := int64(end.Sub(s.StartedAt).Seconds())
	if secs < 0 {
		return 0, true
	}
	return secs, false
}

// Seconds is Elapsed with the anomaly flag turned into an audit log line.
// Aggregation and display always go through raw seconds, never through
// formatted strings.
func Seconds(s *models.Session, at time.Time) int64 {
	secs, anomaly := Elapsed(s, at)
	if anomaly {
		slog.Warn("clock anomaly: negative session span clamped to zero",
			"session", s.ID, "user", s.UserID, "started_at", s.StartedAt)
	}
	return secs
}

// FormatDuration renders whole seconds verbosely, e.g. "1h 4m 5s".
// Zero-valued leading units are omitted; zero renders as "0s".
func FormatDuration(secs int64) string {
	if secs <= 0 {
		return "0s"
	}

	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}

// FormatClock renders whole seconds as a ticking clock, MM:SS below one hour
// and HH:MM:SS from there on
func FormatClock(secs int64) string {
	if secs < 0 {
		secs = 0
	}

	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
