package ledger

import (
	"sort"
	"time"

	"github.com/tride/tride/internal/models"
)

// UserTotal is the tracked time of one user inside an aggregation window
type UserTotal struct {
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
	TotalSeconds int64  `json:"total_seconds"`
}

// Totals is the result of aggregating a window of sessions
type Totals struct {
	PerUser          []UserTotal `json:"per_user"`
	TeamTotalSeconds int64       `json:"team_total_seconds"`
}

// Aggregate folds sessions into per-user totals for the window
// [windowStart, windowEnd). A session qualifies when its start falls inside
// the window; open sessions contribute their live duration at the
// observation instant, so "today" totals include running time. The per-user
// list is ordered by descending total, ties broken by ascending user name.
// The display name comes from the user's most recent qualifying session and
// may be stale; that matches how names are denormalized at check-in.
func Aggregate(sessions []models.Session, windowStart, windowEnd, at time.Time) Totals {
	totals := Totals{PerUser: []UserTotal{}}

	type bucket struct {
		total     int64
		name      string
		lastStart time.Time
	}
	byUser := make(map[string]*bucket)

	for i := range sessions {
		s := &sessions[i]
		if s.StartedAt.Before(windowStart) || !s.StartedAt.Before(windowEnd) {
			continue
		}

		secs := Seconds(s, at)
		totals.TeamTotalSeconds += secs

		b, ok := byUser[s.UserID]
		if !ok {
			b = &bucket{}
			byUser[s.UserID] = b
		}
		b.total += secs
		if !s.StartedAt.Before(b.lastStart) {
			b.lastStart = s.StartedAt
			b.name = s.UserName
		}
	}

	for id, b := range byUser {
		totals.PerUser = append(totals.PerUser, UserTotal{
			UserID:       id,
			UserName:     b.name,
			TotalSeconds: b.total,
		})
	}

	sort.Slice(totals.PerUser, func(i, j int) bool {
		a, b := totals.PerUser[i], totals.PerUser[j]
		if a.TotalSeconds != b.TotalSeconds {
			return a.TotalSeconds > b.TotalSeconds
		}
		return a.UserName < b.UserName
	})

	return totals
}
