package view

import (
	"context"
	"fmt"

	"tasktrack/internal/app"
	"tasktrack/internal/service"
)

// FilterAll selects every status or assignee.
const FilterAll = "all"

// Stats are the dashboard counters.
type Stats struct {
	Total      int
	Todo       int
	InProgress int
	Done       int
}

// ComputeStats counts tasks per status in one pass.
func ComputeStats(tasks []service.Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case service.StatusTodo:
			s.Todo++
		case service.StatusInProgress:
			s.InProgress++
		case service.StatusDone:
			s.Done++
		}
	}
	return s
}

// Dashboard lists tasks with server-side filters and derived counters.
type Dashboard struct {
	app    *app.App
	notify Notifier
	filter service.TaskFilter
}

// NewDashboard creates a dashboard over the given state.
func NewDashboard(a *app.App, n Notifier) *Dashboard {
	return &Dashboard{app: a, notify: n}
}

// Filter returns the active filter.
func (d *Dashboard) Filter() service.TaskFilter {
	return d.filter
}

// Load fetches users and the filtered task list.
func (d *Dashboard) Load(ctx context.Context) error {
	if _, err := d.app.Users.List(ctx); err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	return d.Refresh(ctx)
}

// Refresh re-fetches the task list with the active filter.
func (d *Dashboard) Refresh(ctx context.Context) error {
	if _, err := d.app.Tasks.List(ctx, d.filter); err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	return nil
}

// SetFilters replaces both filters and re-fetches once.
// "all" or "" removes a filter.
func (d *Dashboard) SetFilters(ctx context.Context, status, assigneeID string) error {
	filter, err := parseFilter(status, assigneeID)
	if err != nil {
		return err
	}
	d.filter = filter
	return d.Refresh(ctx)
}

func parseFilter(status, assigneeID string) (service.TaskFilter, error) {
	var filter service.TaskFilter
	if status != FilterAll && status != "" {
		st, err := service.ParseStatus(status)
		if err != nil {
			return service.TaskFilter{}, err
		}
		filter.Status = st
	}
	if assigneeID != FilterAll {
		filter.AssigneeID = assigneeID
	}
	return filter, nil
}

// SetStatusFilter changes the status filter and re-fetches.
// "all" or "" removes it.
func (d *Dashboard) SetStatusFilter(ctx context.Context, status string) error {
	filter, err := parseFilter(status, d.filter.AssigneeID)
	if err != nil {
		return err
	}
	d.filter = filter
	return d.Refresh(ctx)
}

// SetAssigneeFilter changes the assignee filter and re-fetches.
// "all" or "" removes it.
func (d *Dashboard) SetAssigneeFilter(ctx context.Context, assigneeID string) error {
	filter, err := parseFilter(string(d.filter.Status), assigneeID)
	if err != nil {
		return err
	}
	d.filter = filter
	return d.Refresh(ctx)
}

// Tasks returns the current task list.
func (d *Dashboard) Tasks() []service.Task {
	return d.app.Tasks.Tasks()
}

// Stats recomputes the counters from the current task list.
func (d *Dashboard) Stats() Stats {
	return ComputeStats(d.app.Tasks.Tasks())
}

// AssigneeName returns the display name for a task's assignee, preferring
// the server-supplied name.
func (d *Dashboard) AssigneeName(t service.Task) string {
	if !t.Assigned() {
		return ""
	}
	if t.AssigneeName != nil && *t.AssigneeName != "" {
		return *t.AssigneeName
	}
	if u, ok := d.app.Users.Lookup(*t.AssigneeID); ok {
		return u.Name
	}
	return *t.AssigneeID
}

// DeleteTask deletes a task and reports the outcome.
func (d *Dashboard) DeleteTask(ctx context.Context, id string) error {
	if err := d.app.Tasks.Delete(ctx, id); err != nil {
		d.notify.Error(fmt.Sprintf("Failed to delete task: %v", err))
		return err
	}
	d.notify.Success("Task deleted successfully")
	return nil
}
