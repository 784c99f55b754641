package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/config"
	"github.com/dmitrijs2005/taskkeeper/internal/client/prefs"
	"github.com/dmitrijs2005/taskkeeper/internal/client/store"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	api    client.Client
	tasks  *store.TaskStore
	users  *store.UserStore
	prefs  *prefs.Preferences
	out    io.Writer
	in     *bufio.Reader
}

// NewApp opens the preference store and wires the REST client and stores
// for cfg. Logs go to stderr at warn, or debug when verbose.
func NewApp(ctx context.Context, cfg *config.Config, verbose bool) (*App, error) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	l := logging.NewText(os.Stderr, level)

	p, err := prefs.Open(ctx, cfg.PrefsPath)
	if err != nil {
		return nil, fmt.Errorf("open preferences: %w", err)
	}

	api := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
	l.Debug(ctx, "client ready", "server", cfg.ServerURL, "prefs", cfg.PrefsPath)

	return newApp(cfg, l, api, p, os.Stdout, os.Stdin), nil
}

func newApp(cfg *config.Config, l logging.Logger, api client.Client, p *prefs.Preferences, out io.Writer, in io.Reader) *App {
	return &App{
		config: cfg,
		logger: l,
		api:    api,
		tasks:  store.NewTaskStore(api, l),
		users:  store.NewUserStore(api, l),
		prefs:  p,
		out:    out,
		in:     bufio.NewReader(in),
	}
}

func (a *App) Close() error {
	return a.prefs.Close()
}

// owner is the user new tasks are created for: the configured owner, or
// the user selected with "users use".
func (a *App) owner(ctx context.Context) (string, error) {
	if a.config.OwnerID != "" {
		return a.config.OwnerID, nil
	}
	id, err := a.prefs.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("no user selected: pass --owner or run \"users use <id>\"")
	}
	return id, nil
}

// load fetches the task list, filtered by the configured owner if any.
func (a *App) load(ctx context.Context) error {
	a.tasks.SetOwner(a.config.OwnerID)
	return a.tasks.Refresh(ctx)
}

// resolveTask turns a user reference into a task id. A number is a 1-based
// position in the visible list and a unique id prefix expands to the id.
// Anything else is passed through.
func (a *App) resolveTask(ref string) string {
	visible := a.tasks.Visible()
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(visible) {
		return visible[n-1].ID
	}

	match := ""
	for _, t := range visible {
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return ref
			}
			match = t.ID
		}
	}
	if match != "" {
		return match
	}
	return ref
}

func (a *App) darkMode(ctx context.Context) bool {
	on, err := a.prefs.DarkMode(ctx)
	if err != nil {
		a.logger.Warn(ctx, "read dark mode", "error", err)
	}
	return on
}
