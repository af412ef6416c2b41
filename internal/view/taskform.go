package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tasktrack/internal/service"
	"tasktrack/internal/store"
)

// Unassigned is the assignee field value meaning no assignee.
const Unassigned = "unassigned"

// TaskFields are the editable values of a task form.
type TaskFields struct {
	Title       string
	Description string
	AssigneeID  string
	Status      string
	DueDate     string
}

// TaskForm creates a new task or edits an existing one.
type TaskForm struct {
	tasks  *store.TaskStore
	users  *store.UserStore
	notify Notifier
	task   *service.Task

	Fields TaskFields

	// Errors holds per-field validation messages from the last Submit.
	Errors map[string]string

	// Err is the submission failure of the last Submit, if any.
	Err string

	open bool
}

// NewTaskForm opens a form for task, or for a new task if task is nil.
// users, when non-nil and loaded, is used to check the assignee; a loaded
// but empty list rejects every assignee.
func NewTaskForm(tasks *store.TaskStore, users *store.UserStore, n Notifier, task *service.Task) *TaskForm {
	f := &TaskForm{tasks: tasks, users: users, notify: n, open: true}
	if task != nil {
		t := *task
		f.task = &t
		f.Fields = TaskFields{
			Title:       t.Title,
			Description: t.Description,
			AssigneeID:  Unassigned,
			Status:      string(t.Status),
		}
		if t.Assigned() {
			f.Fields.AssigneeID = *t.AssigneeID
		}
		if t.DueDate != nil {
			f.Fields.DueDate = *t.DueDate
		}
	} else {
		f.Fields = TaskFields{AssigneeID: Unassigned, Status: string(service.StatusTodo)}
	}
	return f
}

// Editing reports whether the form edits an existing task.
func (f *TaskForm) Editing() bool { return f.task != nil }

// Open reports whether the form is still shown.
func (f *TaskForm) Open() bool { return f.open }

// Close dismisses the form without submitting.
func (f *TaskForm) Close() { f.open = false }

func (f *TaskForm) assignee() *string {
	id := strings.TrimSpace(f.Fields.AssigneeID)
	if id == Unassigned {
		id = ""
	}
	return &id
}

func (f *TaskForm) dueDate() *string {
	due := strings.TrimSpace(f.Fields.DueDate)
	return &due
}

func (f *TaskForm) createPayload() service.TaskCreate {
	return service.TaskCreate{
		Title:       f.Fields.Title,
		Description: f.Fields.Description,
		AssigneeID:  f.assignee(),
		Status:      service.Status(f.Fields.Status),
		DueDate:     f.dueDate(),
	}
}

func (f *TaskForm) patchPayload() service.TaskPatch {
	status := service.Status(f.Fields.Status)
	return service.TaskPatch{
		Title:       &f.Fields.Title,
		Description: &f.Fields.Description,
		AssigneeID:  f.assignee(),
		Status:      &status,
		DueDate:     f.dueDate(),
	}
}

// Validate checks every field and fills Errors. It reports whether the
// form may be submitted.
func (f *TaskForm) Validate() bool {
	f.Errors = map[string]string{}

	var err error
	if f.Editing() {
		err = f.patchPayload().Validate()
	} else {
		in := f.createPayload()
		err = in.Validate()
	}
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		for k, v := range verr.Fields {
			f.Errors[k] = v
		}
	}

	if id := *f.assignee(); id != "" && f.users != nil && f.users.Loaded() {
		if _, ok := f.users.Lookup(id); !ok {
			f.Errors["assignee_id"] = "unknown assignee: " + id
		}
	}
	return len(f.Errors) == 0
}

// Submit validates and sends the form through the task store. The form
// closes only on success.
func (f *TaskForm) Submit(ctx context.Context) (service.Task, error) {
	f.Err = ""
	if !f.Validate() {
		return service.Task{}, &service.ValidationError{Fields: f.Errors}
	}

	var (
		task service.Task
		err  error
	)
	if f.Editing() {
		task, err = f.tasks.Update(ctx, f.task.ID, f.patchPayload())
	} else {
		task, err = f.tasks.Create(ctx, f.createPayload())
	}
	if err != nil {
		f.Err = err.Error()
		action := "create"
		if f.Editing() {
			action = "update"
		}
		f.notify.Error(fmt.Sprintf("Failed to %s task: %v", action, err))
		return service.Task{}, err
	}

	if f.Editing() {
		f.notify.Success("Task updated successfully")
	} else {
		f.notify.Success("Task created successfully")
	}
	f.open = false
	return task, nil
}
