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
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd prints the dashboard counters.
type StatsCmd struct {
	filter filterFlags
}

// SetFilter sets the status and assignee filters (for testing).
func (c *StatsCmd) SetFilter(status, assignee string) {
	c.filter = filterFlags{status: status, assignee: assignee}
}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Print task counts by status" }
func (c *StatsCmd) Usage() string {
	return "tasktrack stats [--status " + statusChoices() + "|all] [--assignee <user-id>|all]"
}
func (c *StatsCmd) NeedsBackend() bool { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {
	c.filter.register(fs)
}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	d, err := c.filter.loadDashboard(ctx, cfg, a, out, errOut)
	if err != nil {
		return reportError(errOut, err)
	}

	output.FormatStats(out, d.Stats())
	return exitcode.Success
}
