// Package rest implements the service.Service interface against the task tracker REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"tasktrack/internal/config"
	"tasktrack/internal/service"
)

const (
	// APIPrefix is appended to the configured base URL.
	APIPrefix = "/api"

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second
)

// Client implements service.Service over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
}

// New creates a client for the configured backend.
// If a token file exists, every request carries it as a bearer token.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if err := cfg.RequireBackendURL(); err != nil {
		return nil, err
	}

	httpClient := http.DefaultClient
	if cfg.HasToken() {
		token, err := cfg.LoadToken()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read token: %w", service.ErrUnauthorized, err)
		}
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	}

	return NewWithHTTPClient(cfg.BackendURL, httpClient), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		http:    httpClient,
		baseURL: baseURL + APIPrefix,
	}
}

// ListTasks returns tasks matching the filter in server order.
func (c *Client) ListTasks(ctx context.Context, filter service.TaskFilter) ([]service.Task, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.AssigneeID != "" {
		query.Set("assignee_id", filter.AssigneeID)
	}

	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", query, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns a single task by ID.
func (c *Client) GetTask(ctx context.Context, id string) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, nil, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, in service.TaskCreate) (service.Task, error) {
	in.AssigneeID = nullable(in.AssigneeID)
	in.DueDate = nullable(in.DueDate)

	var task service.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, in, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask sends only the fields set in the patch.
func (c *Client) UpdateTask(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodPatch, taskPath(id), nil, patchBody(patch), &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask removes a task. The response body is ignored.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, nil)
}

// ListUsers returns all users in server order.
func (c *Client) ListUsers(ctx context.Context) ([]service.User, error) {
	var users []service.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a user.
func (c *Client) CreateUser(ctx context.Context, in service.UserCreate) (service.User, error) {
	var user service.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, in, &user); err != nil {
		return service.User{}, err
	}
	return user, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	log := logr.FromContextOrDiscard(ctx)

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.V(1).Info("request failed", "method", method, "url", target, "error", err.Error())
		return wrapError(err)
	}
	defer resp.Body.Close()
	log.V(1).Info("request", "method", method, "url", target, "status", resp.StatusCode, "elapsed", time.Since(start))

	if err := googleapi.CheckResponse(resp); err != nil {
		return wrapError(err)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from %s %s: %w", method, path, err)
	}
	return nil
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}

// nullable maps a pointer to "" onto nil so it is sent as JSON null.
func nullable(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func patchBody(p service.TaskPatch) map[string]any {
	body := make(map[string]any)
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.AssigneeID != nil {
		body["assignee_id"] = nullable(p.AssigneeID)
	}
	if p.Status != nil {
		body["status"] = *p.Status
	}
	if p.DueDate != nil {
		body["due_date"] = nullable(p.DueDate)
	}
	return body
}
