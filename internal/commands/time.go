package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tride/tride/internal/ledger"
	"github.com/tride/tride/internal/parser"
	"github.com/tride/tride/internal/tui"
)

var inCmd = &cobra.Command{
	Use:   "in [task]",
	Short: "Check in: start working on a task",
	Long: `Check in and start the clock on a task. Only one session can be
active at a time; check out before starting the next task.

Tags can be written inline or passed as flags:
  tride in "Revue GovWin #govwin,proposals"
  tride in "Build Android" -t mobile -t release --note "see www.x.test/build"
  tride in "Fix rules" --no-ui`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		parsed := parser.ParseCheckIn(args[0])
		tags, _ := cmd.Flags().GetStringSlice("tags")
		note, _ := cmd.Flags().GetString("note")

		session, err := a.svc.CheckIn(ledger.CheckInRequest{
			UserID:    a.actor.ID,
			UserName:  a.actor.Name,
			UserEmail: a.actor.Email,
			Task:      parsed.Task,
			Tags:      append(parsed.Tags, tags...),
			Note:      note,
		})
		if err != nil {
			switch {
			case errors.Is(err, ledger.ErrAlreadyActive):
				fmt.Println("⚠️  You are already checked in. Run 'tride out' first.")
				if active, err := a.store.ActiveSession(a.actor.ID); err == nil && active != nil {
					fmt.Printf("Current task: %s (since %s)\n", active.Task, active.StartedAt.In(a.cfg.Location()).Format("15:04:05"))
				}
			case errors.Is(err, ledger.ErrInvalidTask):
				fmt.Println("Error: task description cannot be empty")
			default:
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			fmt.Printf("✅ Checked in: %s\n", session.Task)
			if names := session.TagNames(); len(names) > 0 {
				fmt.Printf("Tags: %s\n", strings.Join(names, ", "))
			}
			fmt.Printf("Started at: %s\n", session.StartedAt.In(a.cfg.Location()).Format("15:04:05"))
		} else {
			if err := tui.RunTimerTUI(a.svc, session, a.cfg.Location()); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		}
	}),
}

var outCmd = &cobra.Command{
	Use:   "out [summary]",
	Short: "Check out: stop the clock with a summary",
	Long: `Check out of the active session. The summary feeds the weekly
report, so name what got done: "corrigé, déployé, vérifié, rédigé, testé".

Examples:
  tride out "Fixed the Android build"
  tride out`,
	Args: cobra.MaximumNArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		active, err := a.store.ActiveSession(a.actor.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if active == nil {
			fmt.Println("No active session. Check in first with 'tride in \"task\"'.")
			return
		}

		summary := ""
		if len(args) > 0 {
			summary = args[0]
		}

		session, err := a.svc.CheckOut(active.ID, summary)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🏁 Checked out: %s\n", session.Task)
		fmt.Printf("Session duration: %s\n", ledger.FormatDuration(ledger.Seconds(session, time.Now())))
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your current check-in status",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		active, err := a.store.ActiveSession(a.actor.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if active == nil {
			fmt.Println("Not checked in.")
			return
		}

		watch, _ := cmd.Flags().GetBool("watch")
		if watch {
			if err := tui.RunTimerTUI(a.svc, active, a.cfg.Location()); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		fmt.Printf("⏱️  Checked in: %s\n", active.Task)
		if names := active.TagNames(); len(names) > 0 {
			fmt.Printf("Tags: %s\n", strings.Join(names, ", "))
		}
		fmt.Printf("Started at: %s\n", active.StartedAt.In(a.cfg.Location()).Format("15:04:05"))
		fmt.Printf("Elapsed time: %s\n", ledger.FormatDuration(ledger.Seconds(active, time.Now())))
	}),
}

func init() {
	inCmd.Flags().StringSliceP("tags", "t", []string{}, "Tags for the session")
	inCmd.Flags().String("note", "", "Opening note (links are extracted automatically)")
	inCmd.Flags().Bool("no-ui", false, "Check in without the interactive timer")

	statusCmd.Flags().Bool("watch", false, "Watch the running timer in an interactive UI")
}
