package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/app"
	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/service"
)

func init() {
	Register(&DoneCmd{})
	Register(&StartCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return nil }
func (c *DoneCmd) Synopsis() string   { return "Mark a task done" }
func (c *DoneCmd) Usage() string      { return "tasktrack done <ref>" }
func (c *DoneCmd) NeedsBackend() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	return runSetStatus(ctx, cfg, a, service.StatusDone, args, out, errOut)
}

// StartCmd moves a task to in-progress.
type StartCmd struct{}

func (c *StartCmd) Name() string       { return "start" }
func (c *StartCmd) Aliases() []string  { return nil }
func (c *StartCmd) Synopsis() string   { return "Mark a task in progress" }
func (c *StartCmd) Usage() string      { return "tasktrack start <ref>" }
func (c *StartCmd) NeedsBackend() bool { return true }

func (c *StartCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StartCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	return runSetStatus(ctx, cfg, a, service.StatusInProgress, args, out, errOut)
}

// runSetStatus is the shared implementation for done and start. It sends
// a patch carrying only the status.
func runSetStatus(ctx context.Context, cfg *config.Config, a *app.App, status service.Status, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	id, err := resolveTaskID(ctx, a, ref)
	if err != nil {
		return reportError(errOut, err)
	}

	if _, err := a.Tasks.Update(ctx, id, service.TaskPatch{Status: &status}); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
