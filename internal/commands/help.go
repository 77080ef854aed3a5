package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/app"
	"taskflow/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskflow help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskflow                                           List tasks
  taskflow list [common flags] [--search <term>] [--status <pending|completed>]
  taskflow add [common flags] [--desc <text>] [--due <YYYY-MM-DD>] [--priority <low|medium|high>] <title...>
  taskflow edit [common flags] <n> [--title <text>] [--desc <text>] [--due <YYYY-MM-DD>] [--priority <low|medium|high>]
  taskflow done [common flags] <n>
  taskflow rm [common flags] <n>
  taskflow search [common flags] <term...>
  taskflow summary [common flags]
  taskflow signup [common flags] <username> <password>
  taskflow login [common flags] <username> <password>
  taskflow logout [common flags]
  taskflow whoami [common flags]
  taskflow dark [on|off|toggle]
  taskflow motivate
  taskflow help
  taskflow version

Common flags:
  --config <dir>   Override config directory
  --api <url>      Override server URL (or set TASKFLOW_API_URL)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
