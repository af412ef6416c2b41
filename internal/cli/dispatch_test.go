package cli_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"tasktrack/internal/backend/rest"
	"tasktrack/internal/cli"
	"tasktrack/internal/commands"
	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/service"
	"tasktrack/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// restFactory builds the real REST client, as main does.
func restFactory(ctx context.Context, cfg *config.Config) (service.Service, error) {
	return rest.New(ctx, cfg)
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, _, code := run(t, dispatcher, "version", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "tasktrack 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "list", "--bogus")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -bogus\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "list", "--status")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -status\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Only task", service.StatusTodo)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, _, code := run(t, dispatcher)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "Only task") {
		t.Errorf("expected task in output, got %q", stdout)
	}
}

func TestDispatcher_AliasDispatch(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(t, dispatcher, "create", "--config", t.TempDir(), "--quiet", "-d", "details", "New", "task")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "New task" || tasks[0].Description != "details" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestDispatcher_MissingBackendURL(t *testing.T) {
	t.Setenv(config.BackendURLEnv, "")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, restFactory)

	_, stderr, code := run(t, dispatcher, "list", "--config", t.TempDir())

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: "+config.BackendURLEnv+" is not set") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDispatcher_FactoryFailure(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("dial failed")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	_, stderr, code := run(t, dispatcher, "users", "--config", t.TempDir())

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: dial failed\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDispatcher_EndToEndOverREST(t *testing.T) {
	b := testutil.NewBackend()
	defer b.Close()
	b.Svc.AddUser("u1", "Ann", "ann@example.com")
	t.Setenv(config.BackendURLEnv, b.URL)

	dir := t.TempDir()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, restFactory)

	if _, stderr, code := run(t, dispatcher, "add", "--config", dir, "--quiet", "-d", "Weekly", "-a", "u1", "Report"); code != exitcode.Success {
		t.Fatalf("add: expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if _, stderr, code := run(t, dispatcher, "done", "--config", dir, "--quiet", "1"); code != exitcode.Success {
		t.Fatalf("done: expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}

	stdout, _, code := run(t, dispatcher, "list", "--config", dir, "--status", "done")
	if code != exitcode.Success {
		t.Fatalf("list: expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "[done]        Report  @Ann") {
		t.Errorf("expected done task assigned to Ann, got %q", stdout)
	}

	stdout, _, _ = run(t, dispatcher, "stats", "--config", dir)
	if !strings.HasPrefix(stdout, "Total Tasks: 1\n") {
		t.Errorf("unexpected stats: %q", stdout)
	}
}

func TestDispatcher_DebugLogs(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(t, dispatcher, "users", "--config", t.TempDir(), "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "list replaced") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
}
