package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/app"
	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/output"
	"tasktrack/internal/view"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd prints one task in full.
type ShowCmd struct{}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return nil }
func (c *ShowCmd) Synopsis() string   { return "Show a task" }
func (c *ShowCmd) Usage() string      { return "tasktrack show <ref>" }
func (c *ShowCmd) NeedsBackend() bool { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := resolveTask(ctx, a, ref)
	if err != nil {
		return reportError(errOut, err)
	}

	// Users are only needed to name an assignee the server did not name.
	d := view.NewDashboard(a, &view.WriterNotifier{Out: out, ErrOut: errOut, Quiet: cfg.Quiet})
	if task.Assigned() && task.AssigneeName == nil {
		if _, err := a.Users.List(ctx); err != nil {
			return reportError(errOut, err)
		}
	}

	output.FormatTaskDetail(out, task, d.AssigneeName(task))
	return exitcode.Success
}
