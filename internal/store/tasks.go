package store

import (
	"context"
	"sync"

	"github.com/go-logr/logr"

	"tasktrack/internal/service"
)

// TaskStore owns the task list, the currently selected task and the
// loading flag of the task listing.
type TaskStore struct {
	listeners

	svc service.Service

	mu      sync.RWMutex
	items   []service.Task
	current *service.Task
	loading bool
	err     error
}

// NewTaskStore creates an empty TaskStore backed by svc.
func NewTaskStore(svc service.Service) *TaskStore {
	return &TaskStore{svc: svc}
}

// Tasks returns a copy of the task list.
func (s *TaskStore) Tasks() []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]service.Task(nil), s.items...)
}

// Current returns the selected task, if any.
func (s *TaskStore) Current() (service.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return service.Task{}, false
	}
	return *s.current, true
}

// Loading reports whether a List call is in flight.
func (s *TaskStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the most recent failure, or nil.
func (s *TaskStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// List fetches the tasks matching filter and replaces the list with them,
// in server order.
func (s *TaskStore) List(ctx context.Context, filter service.TaskFilter) ([]service.Task, error) {
	log := logr.FromContextOrDiscard(ctx).WithName("tasks")

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	s.notify()

	tasks, err := s.svc.ListTasks(ctx, filter)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.err = err
		s.mu.Unlock()
		s.notify()
		log.V(1).Info("list failed", "error", err.Error())
		return nil, err
	}
	s.items = append([]service.Task(nil), tasks...)
	s.err = nil
	s.mu.Unlock()
	s.notify()

	log.V(1).Info("list replaced", "status", filter.Status, "assignee", filter.AssigneeID, "count", len(tasks))
	return tasks, nil
}

// Get fetches one task and makes it the current task. The list is not touched.
func (s *TaskStore) Get(ctx context.Context, id string) (service.Task, error) {
	task, err := s.svc.GetTask(ctx, id)
	if err != nil {
		return service.Task{}, s.fail(err)
	}

	s.mu.Lock()
	s.current = &task
	s.mu.Unlock()
	s.notify()
	return task, nil
}

// ClearCurrent drops the current task.
func (s *TaskStore) ClearCurrent() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.notify()
}

// Create submits a new task and appends the created task to the list.
func (s *TaskStore) Create(ctx context.Context, in service.TaskCreate) (service.Task, error) {
	if err := in.Validate(); err != nil {
		return service.Task{}, s.fail(err)
	}

	task, err := s.svc.CreateTask(ctx, in)
	if err != nil {
		return service.Task{}, s.fail(err)
	}

	s.mu.Lock()
	s.items = append(s.items, task)
	s.mu.Unlock()
	s.notify()

	logr.FromContextOrDiscard(ctx).WithName("tasks").V(1).Info("created", "id", task.ID)
	return task, nil
}

// Update submits a partial update. The returned task replaces the list
// entry with the same ID in place, and the current task if it matches.
func (s *TaskStore) Update(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	if err := patch.Validate(); err != nil {
		return service.Task{}, s.fail(err)
	}

	task, err := s.svc.UpdateTask(ctx, id, patch)
	if err != nil {
		return service.Task{}, s.fail(err)
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == task.ID {
			s.items[i] = task
			break
		}
	}
	if s.current != nil && s.current.ID == task.ID {
		updated := task
		s.current = &updated
	}
	s.mu.Unlock()
	s.notify()

	logr.FromContextOrDiscard(ctx).WithName("tasks").V(1).Info("updated", "id", task.ID)
	return task, nil
}

// Delete removes a task. On success every list entry with that ID is
// dropped; an ID not in the list is a no-op.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	kept := s.items[:0:0]
	for _, t := range s.items {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.items = kept
	s.mu.Unlock()
	s.notify()

	logr.FromContextOrDiscard(ctx).WithName("tasks").V(1).Info("deleted", "id", id)
	return nil
}

func (s *TaskStore) fail(err error) error {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.notify()
	return err
}
