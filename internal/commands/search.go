package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskflow/internal/app"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/views"
)

func init() {
	Register(&SearchCmd{})
}

// SearchCmd implements the search command: case-insensitive substring match
// over titles and descriptions.
type SearchCmd struct{}

func (c *SearchCmd) Name() string      { return "search" }
func (c *SearchCmd) Aliases() []string { return nil }
func (c *SearchCmd) Synopsis() string  { return "Search tasks by title or description" }
func (c *SearchCmd) Usage() string     { return "taskflow search <term...>" }
func (c *SearchCmd) NeedsAuth() bool   { return true }

func (c *SearchCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SearchCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: search term required")
		return exitcode.UserError
	}
	term := strings.Join(args, " ")

	snap, err := a.Tasks.Refresh(ctx)
	if err != nil {
		return report(errOut, err)
	}

	matched := views.Search(snap, term)
	if len(matched) == 0 {
		if !a.Cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for i, t := range matched {
		output.FormatTask(out, i+1, t)
	}
	return exitcode.Success
}
