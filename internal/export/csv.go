// Package export serializes session views and aggregations into delimited
// text reports. Every field is quoted and internal quotes are doubled, so
// commas, quotes and newlines inside a summary can never corrupt the row
// structure. Output is deterministic for a given input and observation
// instant; rows keep the order the input view established.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/tride/tride/internal/ledger"
	"github.com/tride/tride/internal/models"
)

var sessionHeader = []string{"dateKey", "userName", "userEmail", "task", "start", "end", "duration", "summary"}

// SessionReport renders one CSV row per session. Open sessions get an empty
// end column and a duration measured at the observation instant. Newlines in
// summaries collapse to spaces.
func SessionReport(sessions []models.Session, at time.Time) string {
	rows := [][]string{sessionHeader}

	for i := range sessions {
		s := &sessions[i]

		end := ""
		if s.EndedAt != nil {
			end = s.EndedAt.UTC().Format(time.RFC3339)
		}

		rows = append(rows, []string{
			s.DateKey,
			s.UserName,
			s.UserEmail,
			s.Task,
			s.StartedAt.UTC().Format(time.RFC3339),
			end,
			ledger.FormatDuration(ledger.Seconds(s, at)),
			collapseNewlines(s.Summary),
		})
	}

	return renderRows(rows)
}

// WeeklyReport renders one CSV row per user from an aggregation, with the
// total split into whole hours and leftover minutes
func WeeklyReport(totals ledger.Totals) string {
	rows := [][]string{{"userName", "hours", "minutes"}}

	for _, u := range totals.PerUser {
		rows = append(rows, []string{
			u.UserName,
			fmt.Sprintf("%d", u.TotalSeconds/3600),
			fmt.Sprintf("%d", (u.TotalSeconds%3600)/60),
		})
	}

	return renderRows(rows)
}

// SessionFilename names a session-level report after its calendar day,
// or marks it as covering all days
func SessionFilename(dateKey string) string {
	if dateKey == "" {
		return "tride_logs_all.csv"
	}
	return fmt.Sprintf("tride_logs_%s.csv", dateKey)
}

// WeeklyFilename names a weekly report after the [start, end) window it
// covers, using the first and last day inside the window
func WeeklyFilename(windowStart, windowEnd time.Time, tz *time.Location) string {
	first := ledger.DayKey(windowStart, tz)
	last := ledger.DayKey(windowEnd.AddDate(0, 0, -1), tz)
	return fmt.Sprintf("tride_weekly_%s_%s.csv", first, last)
}

// renderRows joins quoted fields with commas and rows with newlines
func renderRows(rows [][]string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		for j, field := range row {
			if j > 0 {
				b.WriteString(",")
			}
			b.WriteString(quote(field))
		}
	}
	return b.String()
}

// quote wraps a field in double quotes, doubling internal quotes
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// collapseNewlines flattens a multi-line summary onto one line
func collapseNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.ReplaceAll(text, "\r", " ")
}
