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
	Register(&LoginCmd{})
	Register(&SignupCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with the TaskFlow service" }
func (c *LoginCmd) Usage() string     { return "taskflow login <username> <password>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: username and password required")
		return exitcode.UserError
	}

	// Re-login replaces any existing session; tear the old one down first
	// so no task or draft state leaks between users.
	if _, ok := a.Session.Current(); ok {
		if err := a.Session.Logout(); err != nil {
			return report(errOut, err)
		}
	}

	sess, err := a.Session.Login(ctx, args[0], args[1])
	if err != nil {
		return report(errOut, err)
	}

	if !a.Cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", sess.Username)
	}
	return exitcode.Success
}

// SignupCmd implements the signup command. Registration does not log in;
// the user runs login afterwards.
type SignupCmd struct{}

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return nil }
func (c *SignupCmd) Synopsis() string  { return "Create a new account" }
func (c *SignupCmd) Usage() string     { return "taskflow signup <username> <password>" }
func (c *SignupCmd) NeedsAuth() bool   { return false }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SignupCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: username and password required")
		return exitcode.UserError
	}

	if err := a.Session.Signup(ctx, args[0], args[1]); err != nil {
		return report(errOut, err)
	}

	if !a.Cfg.Quiet {
		fmt.Fprintln(out, "account created (run: taskflow login)")
	}
	return exitcode.Success
}
