package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskflow/internal/app"
	"taskflow/internal/exitcode"
	"taskflow/internal/motivate"
	"taskflow/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	desc     string
	due      string
	priority string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskflow add [--desc <text>] [--due <YYYY-MM-DD>] [--priority <low|medium|high>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.desc, "d", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
}

func (c *AddCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	prio, err := task.ParsePriority(c.priority)
	if err != nil {
		return report(errOut, err)
	}

	created, err := a.Tasks.Add(ctx, task.NewTask{
		Title:       title,
		Description: c.desc,
		Deadline:    c.due,
		Priority:    prio,
	})
	if err != nil {
		return report(errOut, err)
	}

	if !a.Cfg.Quiet {
		fmt.Fprintf(out, "added %q\n", created.Title)
		fmt.Fprintln(out, motivate.Pick())
	}
	return exitcode.Success
}
