package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

type theme struct {
	done, todo string
}

var (
	lightTheme = theme{done: "[x]", todo: "[ ]"}
	darkTheme  = theme{done: "●", todo: "○"}
)

func themeFor(dark bool) theme {
	if dark {
		return darkTheme
	}
	return lightTheme
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printTasks(w io.Writer, list []models.Task, th theme) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\t\tTITLE\tORDER")
	for i, t := range list {
		mark := th.todo
		if t.IsCompleted {
			mark = th.done
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", i+1, shortID(t.ID), mark, t.Title, t.Order)
	}
	_ = tw.Flush()
}

func printUsers(w io.Writer, list []models.User, current string) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No users.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tNAME\tEMAIL\tTASKS")
	for _, u := range list {
		mark := ""
		if u.ID == current {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", mark, u.ID, u.Name, u.Email, u.TaskCount)
	}
	_ = tw.Flush()
}
