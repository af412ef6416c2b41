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
	Register(&ListCmd{})
}

// filterFlags are the dashboard filters shared by list and stats.
type filterFlags struct {
	status   string
	assignee string
}

func (f *filterFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.status, "status", "", "")
	fs.StringVar(&f.status, "s", "", "")
	fs.StringVar(&f.assignee, "assignee", "", "")
	fs.StringVar(&f.assignee, "a", "", "")
}

// loadDashboard fetches users, then tasks with the requested filters.
func (f *filterFlags) loadDashboard(ctx context.Context, cfg *config.Config, a *app.App, out, errOut io.Writer) (*view.Dashboard, error) {
	d := view.NewDashboard(a, &view.WriterNotifier{Out: out, ErrOut: errOut, Quiet: cfg.Quiet})
	if _, err := a.Users.List(ctx); err != nil {
		return nil, err
	}
	if err := d.SetFilters(ctx, f.status, f.assignee); err != nil {
		return nil, err
	}
	return d, nil
}

// ListCmd implements the list command.
// Handles both `tasktrack` (no args) and `tasktrack list [filters]`.
type ListCmd struct {
	filter filterFlags
}

// SetFilter sets the status and assignee filters (for testing).
func (c *ListCmd) SetFilter(status, assignee string) {
	c.filter = filterFlags{status: status, assignee: assignee}
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "tasktrack list [--status " + statusChoices() + "|all] [--assignee <user-id>|all]"
}
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	c.filter.register(fs)
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	d, err := c.filter.loadDashboard(ctx, cfg, a, out, errOut)
	if err != nil {
		return reportError(errOut, err)
	}

	tasks := d.Tasks()
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for i, task := range tasks {
		output.FormatTask(out, i+1, task, d.AssigneeName(task))
	}
	return exitcode.Success
}
