package testutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"tasktrack/internal/service"
)

// Backend is an httptest server speaking the task tracker REST API, backed
// by a FakeService. It answers errors the way the real backend does:
// {"detail": "..."} with 404 for missing tasks and 400 for duplicate emails.
type Backend struct {
	*httptest.Server
	Svc *FakeService

	// Token, when set, is required as a bearer token on every request.
	Token string

	mu       sync.Mutex
	requests []*http.Request
}

// NewBackend starts a Backend. Callers must Close it.
func NewBackend() *Backend {
	b := &Backend{Svc: NewFakeService()}

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tasks", b.listTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", b.createTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}", b.getTask).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}", b.updateTask).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{id}", b.deleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/users", b.listUsers).Methods(http.MethodGet)
	api.HandleFunc("/users", b.createUser).Methods(http.MethodPost)
	api.Use(b.recordAndAuth)

	b.Server = httptest.NewServer(router)
	return b
}

// Requests returns the requests received so far.
func (b *Backend) Requests() []*http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*http.Request(nil), b.requests...)
}

// LastRequest returns the most recent request, or nil.
func (b *Backend) LastRequest() *http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return nil
	}
	return b.requests[len(b.requests)-1]
}

func (b *Backend) recordAndAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r)
		b.mu.Unlock()

		if b.Token != "" && r.Header.Get("Authorization") != "Bearer "+b.Token {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) listTasks(w http.ResponseWriter, r *http.Request) {
	filter := service.TaskFilter{
		Status:     service.Status(r.URL.Query().Get("status")),
		AssigneeID: r.URL.Query().Get("assignee_id"),
	}
	tasks, err := b.Svc.ListTasks(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (b *Backend) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := b.Svc.GetTask(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (b *Backend) createTask(w http.ResponseWriter, r *http.Request) {
	var in service.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid input")
		return
	}
	task, err := b.Svc.CreateTask(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (b *Backend) updateTask(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid input")
		return
	}

	var patch service.TaskPatch
	patch.Title = stringField(raw, "title")
	patch.Description = stringField(raw, "description")
	patch.AssigneeID = stringField(raw, "assignee_id")
	patch.DueDate = stringField(raw, "due_date")
	if s := stringField(raw, "status"); s != nil {
		st := service.Status(*s)
		patch.Status = &st
	}

	task, err := b.Svc.UpdateTask(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (b *Backend) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := b.Svc.DeleteTask(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func (b *Backend) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := b.Svc.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (b *Backend) createUser(w http.ResponseWriter, r *http.Request) {
	var in service.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid input")
		return
	}
	user, err := b.Svc.CreateUser(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// stringField returns nil when the key is absent, a pointer to "" when it
// is JSON null, and the string otherwise.
func stringField(raw map[string]json.RawMessage, key string) *string {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	var s *string
	if err := json.Unmarshal(v, &s); err != nil || s == nil {
		empty := ""
		return &empty
	}
	return s
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, service.ErrInvalid):
		writeDetail(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), service.ErrInvalid.Error()+": "))
	default:
		writeDetail(w, http.StatusInternalServerError, err.Error())
	}
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
