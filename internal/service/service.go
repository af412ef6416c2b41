// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// Stores and commands never talk HTTP directly.
type Service interface {
	// ListTasks returns tasks matching the filter in server order.
	ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error)

	// GetTask returns a single task by ID.
	GetTask(ctx context.Context, id string) (Task, error)

	// CreateTask creates a task and returns it as stored by the backend.
	CreateTask(ctx context.Context, in TaskCreate) (Task, error)

	// UpdateTask applies a partial update and returns the updated task.
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error

	// ListUsers returns all users in server order.
	ListUsers(ctx context.Context) ([]User, error)

	// CreateUser creates a user and returns it as stored by the backend.
	CreateUser(ctx context.Context, in UserCreate) (User, error)
}
