package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for tride",
	Long:  `Display detailed help for all tride commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tride %s (commit %s, built %s)\n", version, commit, date)
	},
}

func showCustomHelp() {
	fmt.Print(`
████████╗██████╗ ██╗██████╗ ███████╗
╚══██╔══╝██╔══██╗██║██╔══██╗██╔════╝
   ██║   ██████╔╝██║██║  ██║█████╗
   ██║   ██╔══██╗██║██║  ██║██╔══╝
   ██║   ██║  ██║██║██████╔╝███████╗
   ╚═╝   ╚═╝  ╚═╝╚═╝╚═════╝ ╚══════╝

tride - Team Check-In / Check-Out

COMMANDS:

  in <task>               Check in and start the clock
    -t, --tags            Comma-separated tags
    --note                Opening note (links auto-extracted)
    --no-ui               Skip the interactive timer

    Smart syntax:
      #hashtags     Inline tags

    Example:
      tride in "Revue GovWin #govwin,proposals"

  out [summary]           Check out with a summary
  status                  Show your current session
    --watch               Watch the running timer

  note <text>             Attach a note to your active session
  tag <name>              Tag your active session

  team                    Live team dashboard
    --all                 Start on the all-days view

    Quick actions:
      /             Search (name, task, summary, tags)
      t             Cycle tag filter
      a             Toggle today / all days
      e             Export the current view as CSV
      esc/q         Quit

  export                  Export sessions as CSV
    --on                  Day (today, yesterday, X days ago, dd/mm/yyyy)
    --all                 All days
    -s, --search          Filter by search text
    -t, --tag             Filter by exact tag
    -o, --output          Output file
    --copy                Copy to clipboard instead

  report                  Weekly per-user totals
    --week                Any day inside the target week
    --csv                 CSV output
    --copy                With --csv, copy to clipboard

  help                    Show this help
  version                 Show version information

One task = one check-in. Check out before starting the next task.

`)
}
