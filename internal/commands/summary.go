package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/app"
	"taskflow/internal/exitcode"
	"taskflow/internal/motivate"
	"taskflow/internal/output"
	"taskflow/internal/views"
)

func init() {
	Register(&SummaryCmd{})
	Register(&MotivateCmd{})
}

// SummaryCmd prints the pending/completed counts.
type SummaryCmd struct{}

func (c *SummaryCmd) Name() string      { return "summary" }
func (c *SummaryCmd) Aliases() []string { return []string{"stats"} }
func (c *SummaryCmd) Synopsis() string  { return "Show pending/completed counts" }
func (c *SummaryCmd) Usage() string     { return "taskflow summary" }
func (c *SummaryCmd) NeedsAuth() bool   { return true }

func (c *SummaryCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SummaryCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	snap, err := a.Tasks.Refresh(ctx)
	if err != nil {
		return report(errOut, err)
	}
	output.FormatSummary(out, views.Counts(snap))
	return exitcode.Success
}

// MotivateCmd prints a motivational message.
type MotivateCmd struct{}

func (c *MotivateCmd) Name() string      { return "motivate" }
func (c *MotivateCmd) Aliases() []string { return nil }
func (c *MotivateCmd) Synopsis() string  { return "Print a motivational message" }
func (c *MotivateCmd) Usage() string     { return "taskflow motivate" }
func (c *MotivateCmd) NeedsAuth() bool   { return false }

func (c *MotivateCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MotivateCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	fmt.Fprintln(out, motivate.Pick())
	return exitcode.Success
}
