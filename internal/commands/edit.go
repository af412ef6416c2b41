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
	"tasktrack/internal/view"
)

// noDueDate is the --due value that leaves a task without a due date.
const noDueDate = "none"

func init() {
	Register(&EditCmd{})
}

// EditCmd changes fields of an existing task. Only the flags given are
// changed; the rest keep the values fetched from the backend.
type EditCmd struct {
	changes service.TaskPatch
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Change a task" }
func (c *EditCmd) Usage() string {
	return "tasktrack edit [--title <text>] [--description <text>] [--assignee <user-id>|unassigned] [--status " + statusChoices() + "] [--due <YYYY-MM-DD>|none] <ref>"
}
func (c *EditCmd) NeedsBackend() bool { return true }

// setter records an explicitly given flag value.
func setter(dst **string) func(string) error {
	return func(s string) error {
		*dst = &s
		return nil
	}
}

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.changes = service.TaskPatch{}
	p := &c.changes
	setStatus := func(s string) error {
		st := service.Status(s)
		p.Status = &st
		return nil
	}
	fs.Func("title", "", setter(&p.Title))
	fs.Func("description", "", setter(&p.Description))
	fs.Func("d", "", setter(&p.Description))
	fs.Func("assignee", "", setter(&p.AssigneeID))
	fs.Func("a", "", setter(&p.AssigneeID))
	fs.Func("status", "", setStatus)
	fs.Func("s", "", setStatus)
	fs.Func("due", "", setter(&p.DueDate))
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if c.changes.Empty() {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	task, err := resolveTask(ctx, a, ref)
	if err != nil {
		return reportError(errOut, err)
	}
	defer a.Tasks.ClearCurrent()

	ch := c.changes
	if ch.AssigneeID != nil && *ch.AssigneeID != view.Unassigned {
		if _, err := a.Users.List(ctx); err != nil {
			return reportError(errOut, err)
		}
	}

	form := view.NewTaskForm(a.Tasks, a.Users, &view.WriterNotifier{Out: out, ErrOut: errOut, Quiet: cfg.Quiet}, &task)
	if ch.Title != nil {
		form.Fields.Title = *ch.Title
	}
	if ch.Description != nil {
		form.Fields.Description = *ch.Description
	}
	if ch.AssigneeID != nil {
		form.Fields.AssigneeID = *ch.AssigneeID
	}
	if ch.Status != nil {
		form.Fields.Status = string(*ch.Status)
	}
	if ch.DueDate != nil {
		form.Fields.DueDate = *ch.DueDate
		if *ch.DueDate == noDueDate {
			form.Fields.DueDate = ""
		}
	}

	if _, err := form.Submit(ctx); err != nil {
		return reportFormError(errOut, err)
	}
	return exitcode.Success
}
