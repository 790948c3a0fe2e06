package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tride/tride/internal/tui"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Open the live team dashboard",
	Long: `Open a live dashboard of what the whole team is working on.

Running durations tick every second. Use / to search, t to cycle the tag
filter, a to toggle between today and all days, e to export the current
view as CSV.`,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		showAll, _ := cmd.Flags().GetBool("all")
		if err := tui.RunDashboardTUI(a.store, a.cfg.Location(), showAll); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

func init() {
	teamCmd.Flags().Bool("all", false, "Start on the all-days view instead of today")
}
