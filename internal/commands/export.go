package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/tride/tride/internal/export"
	"github.com/tride/tride/internal/ledger"
	"github.com/tride/tride/internal/models"
	"github.com/tride/tride/internal/parser"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions as CSV",
	Long: `Export a day of sessions (or all of them) as CSV, with the same
search and tag filters as the dashboard.

Examples:
  tride export                          # today
  tride export --on yesterday
  tride export --on 15/12/2024 -o /tmp/logs.csv
  tride export --all --tag govwin
  tride export --search "android" --copy`,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		now := time.Now()
		tz := a.cfg.Location()

		all, _ := cmd.Flags().GetBool("all")
		on, _ := cmd.Flags().GetString("on")
		search, _ := cmd.Flags().GetString("search")
		tag, _ := cmd.Flags().GetString("tag")
		output, _ := cmd.Flags().GetString("output")
		toClipboard, _ := cmd.Flags().GetBool("copy")

		var sessions []models.Session
		var err error
		dateKey := ""
		if all {
			sessions, err = a.store.RecentSessions(0)
		} else {
			day, perr := parser.ParseWhen(on, now, tz)
			if perr != nil {
				fmt.Printf("Error: %v\n", perr)
				return
			}
			dateKey = ledger.DayKey(day, tz)
			sessions, err = a.store.SessionsByDateKey(dateKey)
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if tag == "" {
			tag = ledger.TagFilterAll
		}
		filtered := ledger.FilterSessions(sessions, search, tag, ledger.ScopeAll, tz, now)
		report := export.SessionReport(filtered, now)

		if toClipboard {
			if err := clipboard.WriteAll(report); err != nil {
				fmt.Printf("Error: failed to copy to clipboard: %v\n", err)
				return
			}
			fmt.Printf("📋 Copied %d sessions to clipboard\n", len(filtered))
			return
		}

		if output == "" {
			output = export.SessionFilename(dateKey)
		}
		if err := os.WriteFile(output, []byte(report), 0644); err != nil {
			fmt.Printf("Error: failed to write %s: %v\n", output, err)
			return
		}
		fmt.Printf("📊 Exported %d sessions to %s\n", len(filtered), output)
	}),
}

func init() {
	exportCmd.Flags().Bool("all", false, "Export all days, not just one")
	exportCmd.Flags().String("on", "today", "Day to export (today, yesterday, X days ago, dd/mm/yyyy)")
	exportCmd.Flags().StringP("search", "s", "", "Filter by search text (name, task, summary, tags)")
	exportCmd.Flags().StringP("tag", "t", "", "Filter by exact tag")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default tride_logs_<date>.csv)")
	exportCmd.Flags().Bool("copy", false, "Copy the CSV to the clipboard instead of writing a file")
}
