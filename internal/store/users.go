package store

import (
	"context"
	"sync"

	"github.com/go-logr/logr"

	"tasktrack/internal/service"
)

// UserStore owns the user list and its loading flag.
type UserStore struct {
	listeners

	svc service.Service

	mu      sync.RWMutex
	items   []service.User
	loading bool
	loaded  bool
	err     error
}

// NewUserStore creates an empty UserStore backed by svc.
func NewUserStore(svc service.Service) *UserStore {
	return &UserStore{svc: svc}
}

// Users returns a copy of the user list.
func (s *UserStore) Users() []service.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]service.User(nil), s.items...)
}

// Lookup finds a user in the list by ID.
func (s *UserStore) Lookup(id string) (service.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.items {
		if u.ID == id {
			return u, true
		}
	}
	return service.User{}, false
}

// Loaded reports whether a List call has succeeded, even if it returned
// no users.
func (s *UserStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Loading reports whether a List call is in flight.
func (s *UserStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the most recent failure, or nil.
func (s *UserStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// List fetches all users and replaces the list with them.
func (s *UserStore) List(ctx context.Context) ([]service.User, error) {
	log := logr.FromContextOrDiscard(ctx).WithName("users")

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	s.notify()

	users, err := s.svc.ListUsers(ctx)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.err = err
		s.mu.Unlock()
		s.notify()
		log.V(1).Info("list failed", "error", err.Error())
		return nil, err
	}
	s.items = append([]service.User(nil), users...)
	s.loaded = true
	s.err = nil
	s.mu.Unlock()
	s.notify()

	log.V(1).Info("list replaced", "count", len(users))
	return users, nil
}

// Create validates and submits a new user, appending it on success.
func (s *UserStore) Create(ctx context.Context, in service.UserCreate) (service.User, error) {
	if err := in.Validate(); err != nil {
		return service.User{}, s.fail(err)
	}

	user, err := s.svc.CreateUser(ctx, in)
	if err != nil {
		return service.User{}, s.fail(err)
	}

	s.mu.Lock()
	s.items = append(s.items, user)
	s.mu.Unlock()
	s.notify()

	logr.FromContextOrDiscard(ctx).WithName("users").V(1).Info("created", "id", user.ID)
	return user, nil
}

func (s *UserStore) fail(err error) error {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.notify()
	return err
}
