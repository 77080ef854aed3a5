package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/app"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/task"
	"taskflow/internal/views"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command, the default when no command is given.
// Shows the pending and completed partitions, optionally filtered.
type ListCmd struct {
	search string
	status string
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskflow list [--search <term>] [--status <pending|completed>]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
	fs.StringVar(&c.status, "status", "", "")
}

func (c *ListCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	var only task.Status
	if c.status != "" {
		only = task.Status(c.status)
		if !task.ValidStatus(only) {
			fmt.Fprintf(errOut, "error: invalid status: %s\n", c.status)
			return exitcode.UserError
		}
	}

	snap, err := a.Tasks.Refresh(ctx)
	if err != nil {
		return report(errOut, err)
	}

	matched := views.Search(snap, c.search)
	pending := views.ByStatus(matched, task.StatusPending)
	completed := views.ByStatus(matched, task.StatusCompleted)

	if len(pending) == 0 && len(completed) == 0 {
		if !a.Cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	if only == "" || only == task.StatusPending {
		output.FormatSectionHeader(out, "Pending")
		for i, t := range pending {
			output.FormatTaskDetail(out, i+1, t)
		}
	}
	if only == "" || only == task.StatusCompleted {
		output.FormatSectionHeader(out, "Completed")
		for i, t := range completed {
			output.FormatTaskDetail(out, i+1, t)
		}
	}
	return exitcode.Success
}
