package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/client/config"
	"github.com/spf13/cobra"
)

// openApp is a seam for building the App in tests.
var openApp = NewApp

// NewRootCommand builds the taskctl command tree. Persistent flags are
// bound to cfg, so they override whatever LoadConfig produced.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	var (
		app     *App
		verbose bool
	)
	get := func() *App { return app }

	root := &cobra.Command{
		Use:           "taskctl",
		Short:         "taskctl - command-line client for taskkeeper",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), cfg, verbose)
			if err != nil {
				return err
			}
			app = a
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return app.Close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&cfg.ServerURL, "server", "s", cfg.ServerURL, "taskkeeper base URL")
	pf.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "timeout of each API request")
	pf.StringVar(&cfg.PrefsPath, "prefs", cfg.PrefsPath, "path of the local preference database")
	pf.StringVarP(&cfg.OwnerID, "owner", "o", cfg.OwnerID, "only show this user's tasks and create tasks for them")
	pf.StringP("config", "c", "", "config file, json or yaml")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		newTasksCommand(get),
		newUsersCommand(get),
		newPrefsCommand(get),
		newShellCommand(get),
		newPingCommand(get),
	)
	return root
}

func newPingCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			if err := a.api.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "OK")
			return nil
		},
	}
}

// Execute runs taskctl with os.Args.
func Execute(ctx context.Context, cfg *config.Config) error {
	if err := NewRootCommand(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
