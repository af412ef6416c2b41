// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"fmt"
	"slices"
	"time"
)

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Label returns the human-readable name of the status.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// ParseStatus converts user input into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: invalid status: %s", ErrInvalid, s)
	}
	return st, nil
}

// Task represents a single task item.
type Task struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	AssigneeID   *string   `json:"assignee_id"`
	AssigneeName *string   `json:"assignee_name"`
	Status       Status    `json:"status"`
	DueDate      *string   `json:"due_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// Assigned reports whether the task has an assignee.
func (t Task) Assigned() bool {
	return t.AssigneeID != nil && *t.AssigneeID != ""
}

// User represents a person tasks can be assigned to.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskFilter narrows a task listing. Empty fields are not applied.
type TaskFilter struct {
	Status     Status
	AssigneeID string
}

// TaskCreate is the payload for creating a task.
type TaskCreate struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	AssigneeID  *string `json:"assignee_id"`
	Status      Status  `json:"status,omitempty"`
	DueDate     *string `json:"due_date"`
}

// TaskPatch is a partial task update. Nil fields are left untouched.
// For AssigneeID and DueDate a pointer to "" clears the field.
type TaskPatch struct {
	Title       *string
	Description *string
	AssigneeID  *string
	Status      *Status
	DueDate     *string
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.AssigneeID == nil &&
		p.Status == nil && p.DueDate == nil
}

// UserCreate is the payload for creating a user.
type UserCreate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
