package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/store"
	"github.com/spf13/cobra"
)

func (a *App) showTasks(ctx context.Context) error {
	printTasks(a.out, a.tasks.Visible(), themeFor(a.darkMode(ctx)))
	return nil
}

func (a *App) search(ctx context.Context, q string) error {
	a.tasks.SetQuery(q)
	return a.showTasks(ctx)
}

func (a *App) addTask(ctx context.Context, title, description string) error {
	owner, err := a.owner(ctx)
	if err != nil {
		return err
	}
	t, err := a.tasks.Create(ctx, title, owner, description)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created task %s\n", t.ID)
	return nil
}

func (a *App) editTask(ctx context.Context, ref string, patch store.TaskPatch) error {
	return a.tasks.Update(ctx, a.resolveTask(ref), patch)
}

func (a *App) removeTask(ctx context.Context, ref string) error {
	return a.tasks.Remove(ctx, a.resolveTask(ref))
}

func (a *App) toggleTask(ctx context.Context, ref string) error {
	return a.tasks.Toggle(ctx, a.resolveTask(ref))
}

func (a *App) moveTask(ctx context.Context, ref, overRef string) error {
	return a.tasks.Move(ctx, a.resolveTask(ref), a.resolveTask(overRef))
}

func (a *App) moveUp(ctx context.Context, ref string) error {
	return a.tasks.MoveUp(ctx, a.resolveTask(ref))
}

func (a *App) moveDown(ctx context.Context, ref string) error {
	return a.tasks.MoveDown(ctx, a.resolveTask(ref))
}

// loaded wraps fn so it runs after the task list has been fetched.
func loaded(app func() *App, fn func(ctx context.Context, a *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a := app()
		if err := a.load(cmd.Context()); err != nil {
			return err
		}
		return fn(cmd.Context(), a, args)
	}
}

func newTasksCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"t"},
		Short:   "List and change tasks",
	}

	var query string
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in display order",
		Args:    cobra.NoArgs,
		RunE: loaded(app, func(ctx context.Context, a *App, _ []string) error {
			return a.search(ctx, query)
		}),
	}
	list.Flags().StringVarP(&query, "query", "q", "", "show only tasks whose title or description contains this text")

	var description string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task for the selected user",
		Args:  cobra.ExactArgs(1),
		RunE: loaded(app, func(ctx context.Context, a *App, args []string) error {
			return a.addTask(ctx, args[0], description)
		}),
	}
	add.Flags().StringVarP(&description, "description", "d", "", "task description")

	var title, desc string
	var done bool
	edit := &cobra.Command{
		Use:   "edit <task>",
		Short: "Change the title, description or completion of a task",
		Args:  cobra.ExactArgs(1),
	}
	edit.Flags().StringVar(&title, "title", "", "new title")
	edit.Flags().StringVar(&desc, "description", "", "new description")
	edit.Flags().BoolVar(&done, "done", false, "mark completed (--done=false to reopen)")
	edit.RunE = loaded(app, func(ctx context.Context, a *App, args []string) error {
		var p store.TaskPatch
		if edit.Flags().Changed("title") {
			p.Title = &title
		}
		if edit.Flags().Changed("description") {
			p.Description = &desc
		}
		if edit.Flags().Changed("done") {
			p.IsCompleted = &done
		}
		return a.editTask(ctx, args[0], p)
	})

	rm := &cobra.Command{
		Use:     "rm <task>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: loaded(app, func(ctx context.Context, a *App, args []string) error {
			return a.removeTask(ctx, args[0])
		}),
	}

	toggle := &cobra.Command{
		Use:   "toggle <task>",
		Short: "Flip the completion flag of a task",
		Args:  cobra.ExactArgs(1),
		RunE: loaded(app, func(ctx context.Context, a *App, args []string) error {
			return a.toggleTask(ctx, args[0])
		}),
	}

	move := &cobra.Command{
		Use:   "move <task> <target>",
		Short: "Move a task to the position of another task",
		Args:  cobra.ExactArgs(2),
		RunE: loaded(app, func(ctx context.Context, a *App, args []string) error {
			return a.moveTask(ctx, args[0], args[1])
		}),
	}

	up := &cobra.Command{
		Use:   "up <task>",
		Short: "Move a task one position up",
		Args:  cobra.ExactArgs(1),
		RunE: loaded(app, func(ctx context.Context, a *App, args []string) error {
			return a.moveUp(ctx, args[0])
		}),
	}

	down := &cobra.Command{
		Use:   "down <task>",
		Short: "Move a task one position down",
		Args:  cobra.ExactArgs(1),
		RunE: loaded(app, func(ctx context.Context, a *App, args []string) error {
			return a.moveDown(ctx, args[0])
		}),
	}

	cmd.AddCommand(list, add, edit, rm, toggle, move, up, down)
	return cmd
}
