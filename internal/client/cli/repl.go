package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// shell is the command surface the REPL dispatches to. App satisfies it.
type shell interface {
	load(ctx context.Context) error
	showTasks(ctx context.Context) error
	search(ctx context.Context, q string) error
	addTask(ctx context.Context, title, description string) error
	toggleTask(ctx context.Context, ref string) error
	removeTask(ctx context.Context, ref string) error
	moveTask(ctx context.Context, ref, overRef string) error
	moveUp(ctx context.Context, ref string) error
	moveDown(ctx context.Context, ref string) error
	listUsers(ctx context.Context) error
	useUser(ctx context.Context, id string) error
	setDarkMode(ctx context.Context, value string) error
}

const replHelp = `Commands:
  ls                 refresh and list tasks
  find [text]        show only matching tasks, no text shows all
  add <title>        create a task for the selected user
  done <task>        toggle completion
  rm <task>          delete a task
  mv <task> <target> move a task to the target's position
  up <task>, down <task>
  users              list users
  use <id>           select the user new tasks are created for
  dark on|off        switch the theme
  exit | quit`

// runREPL reads commands line by line from in until EOF, "exit" or "quit".
// Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a shell, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("taskctl%s> ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help", "?":
			printlnFn(replHelp)
		case "ls", "list":
			if cmdErr = a.load(ctx); cmdErr == nil {
				cmdErr = a.showTasks(ctx)
			}
		case "find":
			cmdErr = a.search(ctx, strings.Join(args, " "))
		case "add":
			if len(args) == 0 {
				printlnFn("Usage: add <title>")
				continue
			}
			cmdErr = a.addTask(ctx, strings.Join(args, " "), "")
		case "done", "toggle", "rm", "up", "down", "use", "dark":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <arg>", cmd))
				continue
			}
			cmdErr = dispatchOne(ctx, a, cmd, args[0])
		case "mv":
			if len(args) != 2 {
				printlnFn("Usage: mv <task> <target>")
				continue
			}
			cmdErr = a.moveTask(ctx, args[0], args[1])
		case "users":
			cmdErr = a.listUsers(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}

func dispatchOne(ctx context.Context, a shell, cmd, arg string) error {
	switch cmd {
	case "done", "toggle":
		return a.toggleTask(ctx, arg)
	case "rm":
		return a.removeTask(ctx, arg)
	case "up":
		return a.moveUp(ctx, arg)
	case "down":
		return a.moveDown(ctx, arg)
	case "use":
		return a.useUser(ctx, arg)
	default:
		return a.setDarkMode(ctx, arg)
	}
}

func (a *App) status() string {
	st := a.tasks.State()
	s := fmt.Sprintf(" (%d tasks", len(st.Tasks))
	if st.Syncing {
		s += ", syncing"
	}
	return s + ")"
}

func newShellCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session over a live task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			ctx := cmd.Context()
			if err := a.load(ctx); err != nil {
				printlnFn("Error:", err)
			}
			printlnFn("taskctl shell (type 'help' for commands)")
			runREPL(ctx, a, a.status, a.in)
			return nil
		},
	}
}
