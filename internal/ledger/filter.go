package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/tride/tride/internal/models"
)

// DateScope restricts a filtered view to a calendar range
type DateScope int

const (
	// ScopeToday keeps sessions started on the current calendar day in the
	// reference timezone
	ScopeToday DateScope = iota
	// ScopeAll keeps every session
	ScopeAll
)

// TagFilterAll is the tag filter value that passes every session
const TagFilterAll = "All"

// FilterSessions derives a filtered, sorted view of sessions.
// searchText matches case-insensitively against user name, task, summary and
// tags; empty search passes everything. tagFilter requires an exact,
// case-sensitive tag unless it is TagFilterAll. The result is ordered by
// start descending, stable for equal timestamps.
func FilterSessions(sessions []models.Session, searchText, tagFilter string, scope DateScope, tz *time.Location, now time.Time) []models.Session {
	query := strings.ToLower(strings.TrimSpace(searchText))
	todayKey := DayKey(now, tz)

	var out []models.Session
	for _, s := range sessions {
		if scope == ScopeToday && DayKey(s.StartedAt, tz) != todayKey {
			continue
		}
		if tagFilter != TagFilterAll && tagFilter != "" && !s.HasTag(tagFilter) {
			continue
		}
		if query != "" && !matchesSearch(&s, query) {
			continue
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})

	return out
}

// matchesSearch checks a lowercased query against the session's searchable text
func matchesSearch(s *models.Session, query string) bool {
	fields := []string{s.UserName, s.Task, s.Summary}
	fields = append(fields, s.TagNames()...)

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
