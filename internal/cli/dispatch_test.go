package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"taskflow/internal/cli"
	"taskflow/internal/commands"
	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
	"taskflow/internal/task"
	"taskflow/internal/testutil"
)

func newDispatcher(t *testing.T) (*testutil.FakeService, *cli.Dispatcher) {
	t.Helper()
	svc := testutil.NewFakeService()
	d := cli.NewDispatcher(commands.DefaultRegistry, func(cfg *config.Config, tokens service.TokenProvider) (service.Service, error) {
		return svc, nil
	})
	return svc, d
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := d.Run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_UnknownCommand(t *testing.T) {
	_, d := newDispatcher(t)
	code, _, errOut := run(t, d, "bogus")
	if code != exitcode.UserError {
		t.Errorf("exit = %d", code)
	}
	if errOut != "error: unknown command: bogus\n" {
		t.Errorf("errOut = %q", errOut)
	}
}

func TestRun_FlagBeforeCommand(t *testing.T) {
	_, d := newDispatcher(t)
	code, _, errOut := run(t, d, "--quiet")
	if code != exitcode.UserError {
		t.Errorf("exit = %d", code)
	}
	if errOut != "error: unknown command: --quiet\n" {
		t.Errorf("errOut = %q", errOut)
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	_, d := newDispatcher(t)
	code, _, errOut := run(t, d, "version", "--bogus")
	if code != exitcode.UserError {
		t.Errorf("exit = %d", code)
	}
	if !strings.Contains(errOut, "unknown flag") {
		t.Errorf("errOut = %q", errOut)
	}
}

func TestRun_NoArgsDefaultsToList(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	_, d := newDispatcher(t)

	// Anonymous, so the default list command hits the auth gate.
	code, _, errOut := run(t, d)
	if code != exitcode.AuthError {
		t.Errorf("exit = %d", code)
	}
	if errOut != "error: not logged in (run: taskflow login)\n" {
		t.Errorf("errOut = %q", errOut)
	}
}

func TestRun_AuthGateFailsBeforeNetwork(t *testing.T) {
	svc, d := newDispatcher(t)
	code, _, errOut := run(t, d, "list", "--config", t.TempDir())
	if code != exitcode.AuthError {
		t.Errorf("exit = %d", code)
	}
	if errOut != "error: not logged in (run: taskflow login)\n" {
		t.Errorf("errOut = %q", errOut)
	}
	if svc.ListCalls != 0 {
		t.Error("gated command must not contact the service")
	}
}

func TestRun_AnonymousCommandsBypassGate(t *testing.T) {
	_, d := newDispatcher(t)
	code, out, _ := run(t, d, "version", "--config", t.TempDir())
	if code != exitcode.Success {
		t.Errorf("exit = %d", code)
	}
	if out != "taskflow "+commands.Version+"\n" {
		t.Errorf("out = %q", out)
	}
}

func TestRun_LoginThenList(t *testing.T) {
	dir := t.TempDir()
	svc, d := newDispatcher(t)
	svc.AddAccount("alice", "pw")
	svc.SeedTask(task.Task{Title: "Buy milk"})

	code, out, errOut := run(t, d, "login", "--config", dir, "alice", "pw")
	if code != exitcode.Success {
		t.Fatalf("login exit = %d, errOut = %q", code, errOut)
	}
	if out != "logged in as alice\n" {
		t.Errorf("out = %q", out)
	}

	// A separate invocation restores the persisted session from disk.
	code, out, errOut = run(t, d, "list", "--config", dir)
	if code != exitcode.Success {
		t.Fatalf("list exit = %d, errOut = %q", code, errOut)
	}
	if !strings.Contains(out, "Buy milk") {
		t.Errorf("out = %q", out)
	}
}

func TestRun_QuietSuppressesChatter(t *testing.T) {
	dir := t.TempDir()
	svc, d := newDispatcher(t)
	svc.AddAccount("alice", "pw")

	code, out, _ := run(t, d, "login", "--config", dir, "--quiet", "alice", "pw")
	if code != exitcode.Success {
		t.Fatalf("exit = %d", code)
	}
	if out != "" {
		t.Errorf("quiet run must print nothing, got %q", out)
	}
}
