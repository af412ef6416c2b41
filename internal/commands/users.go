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
	Register(&UsersCmd{})
}

// UsersCmd lists the users tasks can be assigned to.
type UsersCmd struct{}

func (c *UsersCmd) Name() string       { return "users" }
func (c *UsersCmd) Aliases() []string  { return nil }
func (c *UsersCmd) Synopsis() string   { return "List users" }
func (c *UsersCmd) Usage() string      { return "tasktrack users" }
func (c *UsersCmd) NeedsBackend() bool { return true }

func (c *UsersCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UsersCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	users, err := a.Users.List(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	if len(users) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no users found")
		}
		return exitcode.Success
	}
	for i, u := range users {
		output.FormatUser(out, i+1, u)
	}
	return exitcode.Success
}
