package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasktrack/internal/app"
	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/view"
)

func init() {
	Register(&AddUserCmd{})
}

// AddUserCmd implements the adduser command.
type AddUserCmd struct{}

func (c *AddUserCmd) Name() string       { return "adduser" }
func (c *AddUserCmd) Aliases() []string  { return []string{"createuser"} }
func (c *AddUserCmd) Synopsis() string   { return "Create a user" }
func (c *AddUserCmd) Usage() string      { return "tasktrack adduser <email> <name...>" }
func (c *AddUserCmd) NeedsBackend() bool { return true }

func (c *AddUserCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddUserCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}

	form := view.NewUserForm(a.Users, &view.WriterNotifier{Out: out, ErrOut: errOut, Quiet: cfg.Quiet})
	form.Fields.Email = args[0]
	form.Fields.Name = strings.Join(args[1:], " ")

	if _, err := form.Submit(ctx); err != nil {
		return reportFormError(errOut, err)
	}
	return exitcode.Success
}
