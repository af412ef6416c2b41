// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasktrack/internal/service"
	"tasktrack/internal/view"
)

// FormatTask formats a task line for the task list.
// Format: "{N:>4}  {[STATUS]:<13} {TITLE}[  @ASSIGNEE][  due DATE]  ({ID})\n"
func FormatTask(w io.Writer, num int, task service.Task, assignee string) {
	title := normalizeTitle(task.Title)
	var extra strings.Builder
	if assignee != "" {
		fmt.Fprintf(&extra, "  @%s", assignee)
	}
	if task.DueDate != nil && *task.DueDate != "" {
		fmt.Fprintf(&extra, "  due %s", *task.DueDate)
	}
	fmt.Fprintf(w, "%4d  %-13s %s%s  (%s)\n", num, "["+string(task.Status)+"]", title, extra.String(), task.ID)
}

// FormatTaskDetail formats every field of a task, one per line.
func FormatTaskDetail(w io.Writer, task service.Task, assignee string) {
	if assignee == "" {
		assignee = "(unassigned)"
	}
	due := "(none)"
	if task.DueDate != nil && *task.DueDate != "" {
		due = *task.DueDate
	}
	fmt.Fprintf(w, "ID:          %s\n", task.ID)
	fmt.Fprintf(w, "Title:       %s\n", normalizeTitle(task.Title))
	fmt.Fprintf(w, "Status:      %s\n", task.Status.Label())
	fmt.Fprintf(w, "Assignee:    %s\n", assignee)
	fmt.Fprintf(w, "Due:         %s\n", due)
	if !task.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Created:     %s\n", task.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(w, "Description:")
	for _, line := range strings.Split(task.Description, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

// FormatStats formats the dashboard counters.
func FormatStats(w io.Writer, s view.Stats) {
	fmt.Fprintf(w, "Total Tasks: %d\n", s.Total)
	fmt.Fprintf(w, "%s: %d\n", service.StatusTodo.Label(), s.Todo)
	fmt.Fprintf(w, "%s: %d\n", service.StatusInProgress.Label(), s.InProgress)
	fmt.Fprintf(w, "%s: %d\n", service.StatusDone.Label(), s.Done)
}

// FormatUser formats a user line for the users command.
// Format: "{N:>4}  {NAME} <{EMAIL}>  ({ID})\n"
func FormatUser(w io.Writer, num int, user service.User) {
	fmt.Fprintf(w, "%4d  %s <%s>  (%s)\n", num, normalizeTitle(user.Name), user.Email, user.ID)
}

// FormatFieldErrors prints validation messages in a stable order.
func FormatFieldErrors(w io.Writer, fields map[string]string) {
	order := []string{"title", "description", "name", "email", "assignee_id", "status", "due_date"}
	seen := make(map[string]bool)
	for _, name := range order {
		if msg, ok := fields[name]; ok {
			fmt.Fprintf(w, "error: %s\n", msg)
			seen[name] = true
		}
	}
	for name, msg := range fields {
		if !seen[name] {
			fmt.Fprintf(w, "error: %s\n", msg)
		}
	}
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
