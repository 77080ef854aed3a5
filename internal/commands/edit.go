package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskflow/internal/app"
	"taskflow/internal/exitcode"
	"taskflow/internal/task"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. The edit goes through the draft
// coordinator: the task seeds a draft, the provided flags update it, and
// commit sends only the fields that changed.
type EditCmd struct {
	title    string
	desc     string
	due      string
	priority string
	fs       *flag.FlagSet
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task's fields" }
func (c *EditCmd) Usage() string {
	return "taskflow edit <n> [--title <text>] [--desc <text>] [--due <YYYY-MM-DD>] [--priority <low|medium|high>]"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	c.fs = fs
}

// setFlags returns the names of flags that were explicitly provided, so an
// empty value can still clear a field.
func (c *EditCmd) setFlags() map[string]bool {
	set := make(map[string]bool)
	if c.fs != nil {
		c.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	}
	return set
}

func (c *EditCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		if err == ErrTaskRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	set := c.setFlags()
	if !set["title"] && !set["desc"] && !set["due"] && !set["priority"] {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	t, err := findPending(ctx, a, num)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return report(errOut, err)
	}

	a.Editor.Begin(t)
	if set["title"] {
		_ = a.Editor.SetTitle(c.title)
	}
	if set["desc"] {
		_ = a.Editor.SetDescription(c.desc)
	}
	if set["due"] {
		_ = a.Editor.SetDeadline(c.due)
	}
	if set["priority"] {
		prio, err := task.ParsePriority(c.priority)
		if err != nil {
			a.Editor.Cancel()
			return report(errOut, err)
		}
		_ = a.Editor.SetPriority(prio)
	}

	updated, err := a.Editor.Commit(ctx)
	if err != nil {
		// The draft survives a failed commit, but a one-shot CLI run can't
		// retry it; discard so the next invocation starts clean.
		a.Editor.Cancel()
		return report(errOut, err)
	}

	if !a.Cfg.Quiet {
		if updated.ID == 0 {
			// Flag values matched the current fields; nothing was sent.
			fmt.Fprintln(out, "no changes")
		} else {
			fmt.Fprintf(out, "updated %q\n", updated.Title)
		}
	}
	return exitcode.Success
}
