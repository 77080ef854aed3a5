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
	Register(&DarkCmd{})
}

// DarkCmd toggles the persisted dark-mode preference. The preference is
// independent of the session: it survives logout.
type DarkCmd struct{}

func (c *DarkCmd) Name() string      { return "dark" }
func (c *DarkCmd) Aliases() []string { return nil }
func (c *DarkCmd) Synopsis() string  { return "Show or set the dark-mode preference" }
func (c *DarkCmd) Usage() string     { return "taskflow dark [on|off|toggle]" }
func (c *DarkCmd) NeedsAuth() bool   { return false }

func (c *DarkCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DarkCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		c.print(out, a.Prefs.DarkMode())
		return exitcode.Success
	}

	var want bool
	switch args[0] {
	case "on":
		want = true
	case "off":
		want = false
	case "toggle":
		want = !a.Prefs.DarkMode()
	default:
		fmt.Fprintf(errOut, "error: invalid argument: %s\n", args[0])
		return exitcode.UserError
	}

	if err := a.Prefs.SetDarkMode(want); err != nil {
		fmt.Fprintf(errOut, "error: failed to save preference: %v\n", err)
		return exitcode.UserError
	}
	if !a.Cfg.Quiet {
		c.print(out, want)
	}
	return exitcode.Success
}

func (c *DarkCmd) print(out io.Writer, on bool) {
	if on {
		fmt.Fprintln(out, "dark mode on")
	} else {
		fmt.Fprintln(out, "dark mode off")
	}
}
