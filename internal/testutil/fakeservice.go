// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"tasktrack/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// It mirrors the backend: it assigns IDs, fills in assignee names and
// rejects duplicate emails.
type FakeService struct {
	mu    sync.RWMutex
	tasks []service.Task
	users []service.User
	calls map[string]int

	// Error injection for testing
	ListTasksErr  error
	GetTaskErr    error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error
	ListUsersErr  error
	CreateUserErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{calls: make(map[string]int)}
}

// AddUser adds a user and returns it.
func (f *FakeService) AddUser(id, name, email string) service.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := service.User{ID: id, Name: name, Email: email, CreatedAt: time.Now().UTC()}
	f.users = append(f.users, u)
	return u
}

// AddTask adds a task with the given status and returns it.
func (f *FakeService) AddTask(id, title string, status service.Status) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{
		ID:          id,
		Title:       title,
		Description: title,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}
	f.tasks = append(f.tasks, t)
	return t
}

// Assign sets the assignee of a stored task.
func (f *FakeService) Assign(taskID, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			f.setAssignee(&f.tasks[i], userID)
		}
	}
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Task(nil), f.tasks...)
}

// Calls returns how many times a method was invoked.
func (f *FakeService) Calls(method string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls[method]
}

func (f *FakeService) record(method string) {
	f.mu.Lock()
	f.calls[method]++
	f.mu.Unlock()
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, filter service.TaskFilter) ([]service.Task, error) {
	f.record("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	result := []service.Task{}
	for _, t := range f.tasks {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.AssigneeID != "" && (t.AssigneeID == nil || *t.AssigneeID != filter.AssigneeID) {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id string) (service.Task, error) {
	f.record("GetTask")
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, fmt.Errorf("task %s: %w", id, service.ErrNotFound)
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, in service.TaskCreate) (service.Task, error) {
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	status := in.Status
	if status == "" {
		status = service.StatusTodo
	}
	t := service.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}
	if in.AssigneeID != nil {
		f.setAssignee(&t, *in.AssigneeID)
	}
	if in.DueDate != nil && *in.DueDate != "" {
		due := *in.DueDate
		t.DueDate = &due
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	f.record("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		t := &f.tasks[i]
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.AssigneeID != nil {
			f.setAssignee(t, *patch.AssigneeID)
		}
		if patch.DueDate != nil {
			if *patch.DueDate == "" {
				t.DueDate = nil
			} else {
				due := *patch.DueDate
				t.DueDate = &due
			}
		}
		return *t, nil
	}
	return service.Task{}, fmt.Errorf("task %s: %w", id, service.ErrNotFound)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.record("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("task %s: %w", id, service.ErrNotFound)
}

// ListUsers implements service.Service.
func (f *FakeService) ListUsers(ctx context.Context) ([]service.User, error) {
	f.record("ListUsers")
	if f.ListUsersErr != nil {
		return nil, f.ListUsersErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.User{}, f.users...), nil
}

// CreateUser implements service.Service.
func (f *FakeService) CreateUser(ctx context.Context, in service.UserCreate) (service.User, error) {
	f.record("CreateUser")
	if f.CreateUserErr != nil {
		return service.User{}, f.CreateUserErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == in.Email {
			return service.User{}, fmt.Errorf("%w: User with this email already exists", service.ErrInvalid)
		}
	}
	u := service.User{ID: uuid.NewString(), Name: in.Name, Email: in.Email, CreatedAt: time.Now().UTC()}
	f.users = append(f.users, u)
	return u, nil
}

// setAssignee sets or clears the assignee and its denormalized name.
// Callers hold f.mu.
func (f *FakeService) setAssignee(t *service.Task, userID string) {
	if userID == "" {
		t.AssigneeID = nil
		t.AssigneeName = nil
		return
	}
	id := userID
	t.AssigneeID = &id
	t.AssigneeName = nil
	for _, u := range f.users {
		if u.ID == userID {
			name := u.Name
			t.AssigneeName = &name
		}
	}
}
