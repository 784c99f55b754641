package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) showPrefs(ctx context.Context) error {
	all, err := a.prefs.All(ctx)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "%s=%s\n", k, all[k])
	}
	return nil
}

func (a *App) setDarkMode(ctx context.Context, value string) error {
	var on bool
	switch strings.ToLower(value) {
	case "on", "true", "1":
		on = true
	case "off", "false", "0":
	default:
		return fmt.Errorf("dark mode must be on or off, got %q", value)
	}
	return a.prefs.SetDarkMode(ctx, on)
}

func newPrefsCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change local preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().showPrefs(cmd.Context())
		},
	}

	dark := &cobra.Command{
		Use:       "dark <on|off>",
		Short:     "Switch the dark theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().setDarkMode(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(dark)
	return cmd
}
