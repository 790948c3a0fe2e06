package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/tride/tride/internal/export"
	"github.com/tride/tride/internal/ledger"
	"github.com/tride/tride/internal/parser"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the weekly per-user report",
	Long: `Aggregate a week of sessions into per-user totals. Open sessions
count their running time, so the current week includes work in progress.

Examples:
  tride report                    # this week
  tride report --week "7 days ago"
  tride report --csv -o week.csv
  tride report --csv --copy`,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		now := time.Now()
		tz := a.cfg.Location()

		week, _ := cmd.Flags().GetString("week")
		day, err := parser.ParseWhen(week, now, tz)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		weekStart, weekEnd := ledger.WeekWindow(day, tz)
		sessions, err := a.store.SessionsInWindow(weekStart, weekEnd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		totals := ledger.Aggregate(sessions, weekStart, weekEnd, now)

		asCSV, _ := cmd.Flags().GetBool("csv")
		if asCSV {
			report := export.WeeklyReport(totals)
			toClipboard, _ := cmd.Flags().GetBool("copy")
			if toClipboard {
				if err := clipboard.WriteAll(report); err != nil {
					fmt.Printf("Error: failed to copy to clipboard: %v\n", err)
					return
				}
				fmt.Println("📋 Weekly report copied to clipboard")
				return
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				output = export.WeeklyFilename(weekStart, weekEnd, tz)
			}
			if err := os.WriteFile(output, []byte(report), 0644); err != nil {
				fmt.Printf("Error: failed to write %s: %v\n", output, err)
				return
			}
			fmt.Printf("📊 Weekly report written to %s\n", output)
			return
		}

		displayWeeklyReport(totals, weekStart, weekEnd)
	}),
}

// displayWeeklyReport outputs the formatted per-user table
func displayWeeklyReport(totals ledger.Totals, weekStart, weekEnd time.Time) {
	if len(totals.PerUser) == 0 {
		fmt.Println("No time tracked this week.")
		return
	}

	nameWidth := 20
	for _, u := range totals.PerUser {
		if len(u.UserName) > nameWidth {
			nameWidth = len(u.UserName)
		}
	}
	if nameWidth > 40 {
		nameWidth = 40 // Cap at 40 chars
	}

	fmt.Printf("%-*s  %s\n", nameWidth, "User", "Total")
	fmt.Println(strings.Repeat("-", nameWidth+12))

	for _, u := range totals.PerUser {
		name := u.UserName
		if len(name) > nameWidth {
			name = name[:nameWidth-3] + "..."
		}
		fmt.Printf("%-*s  %s\n", nameWidth, name, ledger.FormatDuration(u.TotalSeconds))
	}

	fmt.Println(strings.Repeat("-", nameWidth+12))
	fmt.Printf("%-*s  %s\n", nameWidth, "Team", ledger.FormatDuration(totals.TeamTotalSeconds))

	fmt.Printf("\nWeek of %s to %s\n",
		weekStart.Format("Jan 2"),
		weekEnd.AddDate(0, 0, -1).Format("Jan 2, 2006"))
}

func init() {
	reportCmd.Flags().String("week", "today", "Any day inside the week to report (today, yesterday, dd/mm/yyyy)")
	reportCmd.Flags().Bool("csv", false, "Write the report as CSV instead of a table")
	reportCmd.Flags().StringP("output", "o", "", "Output file for --csv (default tride_weekly_<range>.csv)")
	reportCmd.Flags().Bool("copy", false, "With --csv, copy to the clipboard instead of writing a file")
}
