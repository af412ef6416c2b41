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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	assignee    string
	status      string
	due         string
}

// SetFields sets the optional task fields (for testing).
func (c *AddCmd) SetFields(description, assignee, status, due string) {
	c.description = description
	c.assignee = assignee
	c.status = status
	c.due = due
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "tasktrack add --description <text> [--assignee <user-id>] [--status " + statusChoices() + "] [--due <YYYY-MM-DD>|none] <title...>"
}
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.assignee, "assignee", "", "")
	fs.StringVar(&c.assignee, "a", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	// The form checks the assignee against the user list when one is loaded.
	if c.assignee != "" && c.assignee != view.Unassigned {
		if _, err := a.Users.List(ctx); err != nil {
			return reportError(errOut, err)
		}
	}

	form := view.NewTaskForm(a.Tasks, a.Users, &view.WriterNotifier{Out: out, ErrOut: errOut, Quiet: cfg.Quiet}, nil)
	form.Fields.Title = title
	form.Fields.Description = c.description
	if c.assignee != "" {
		form.Fields.AssigneeID = c.assignee
	}
	if c.status != "" {
		form.Fields.Status = c.status
	}
	form.Fields.DueDate = c.due
	if c.due == noDueDate {
		form.Fields.DueDate = ""
	}

	task, err := form.Submit(ctx)
	if err != nil {
		return reportFormError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "%s\n", task.ID)
	}
	return exitcode.Success
}
