package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tride/tride/internal/config"
	"github.com/tride/tride/internal/db"
	"github.com/tride/tride/internal/identity"
	"github.com/tride/tride/internal/ledger"
	"github.com/tride/tride/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "tride",
	Short: "Team check-in / check-out time tracker",
	Long: `tride is a command-line tool for team time tracking.
Check in when you start a task, check out with a summary when you finish,
and watch the whole team's day on a live dashboard.`,
}

// app bundles the wired-up pieces every command needs
type app struct {
	cfg   *config.Config
	actor identity.Actor
	store *db.Store
	svc   *ledger.Service
}

// newApp loads config, resolves the actor and opens the record store
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logging.NewLogger(cfg.LogLevel))

	actor, err := identity.Resolve(cfg)
	if err != nil {
		return nil, err
	}

	store, err := db.Open(db.Options{
		Path:     cfg.DatabasePath,
		Timezone: cfg.Location(),
	})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:   cfg,
		actor: actor,
		store: store,
		svc:   ledger.NewService(store),
	}, nil
}

func (a *app) close() {
	a.store.Close()
}

// withApp wraps a command function so it runs with a wired-up app
func withApp(fn func(*app, *cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer a.close()
		fn(a, cmd, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(inCmd)
	rootCmd.AddCommand(outCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
