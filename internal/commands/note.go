package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tride/tride/internal/ledger"
)

var noteCmd = &cobra.Command{
	Use:   "note [text]",
	Short: "Attach a note to your active session",
	Long: `Attach a timestamped note to the session you are checked into.
Links (http, https or bare www.) are extracted and kept alongside the text.

Example:
  tride note "rules deployed, see https://console.firebase.test/rules"`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		active, err := a.store.ActiveSession(a.actor.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if active == nil {
			fmt.Println("No active session. Notes can only be added while checked in.")
			return
		}

		note, err := a.svc.AddNote(active.ID, a.actor.ID, args[0])
		if err != nil {
			if errors.Is(err, ledger.ErrSessionClosed) {
				fmt.Println("Error: the session closed before the note could be added")
			} else {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		fmt.Printf("📝 Note added to: %s\n", active.Task)
		if len(note.Links) > 0 {
			fmt.Printf("Links: %s\n", strings.Join(note.Links, ", "))
		}
	}),
}

var tagCmd = &cobra.Command{
	Use:   "tag [name]",
	Short: "Tag your active session",
	Long: `Attach a tag to the session you are checked into. Tagging with a
label the session already carries is a no-op.

Example:
  tride tag govwin`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		active, err := a.store.ActiveSession(a.actor.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if active == nil {
			fmt.Println("No active session. Tags can only be added while checked in.")
			return
		}

		if err := a.svc.AddTag(active.ID, args[0]); err != nil {
			if errors.Is(err, ledger.ErrSessionClosed) {
				fmt.Println("Error: the session closed before the tag could be added")
			} else {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		fmt.Printf("🏷️  Tagged %s: %s\n", active.Task, strings.TrimSpace(args[0]))
	}),
}
