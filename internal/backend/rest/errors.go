package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"

	"tasktrack/internal/service"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Code   int
	Detail string
	kind   error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if text := http.StatusText(e.Code); text != "" {
		return strings.ToLower(text)
	}
	return "unexpected status"
}

// Unwrap exposes the service error kind (service.ErrNotFound etc.).
func (e *APIError) Unwrap() error { return e.kind }

// wrapError wraps transport and API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errors.New("request timed out")
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	apiErr := &APIError{Code: gerr.Code, Detail: detail(gerr)}
	switch gerr.Code {
	case http.StatusNotFound:
		apiErr.kind = service.ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		apiErr.kind = service.ErrInvalid
	case http.StatusUnauthorized, http.StatusForbidden:
		apiErr.kind = service.ErrUnauthorized
	}
	return apiErr
}

// detail extracts the "detail" message of an error body. Validation errors
// carry a list there; only string details are used.
func detail(gerr *googleapi.Error) string {
	if gerr.Message != "" {
		return gerr.Message
	}
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal([]byte(gerr.Body), &body); err != nil || len(body.Detail) == 0 {
		return ""
	}
	var msg string
	if err := json.Unmarshal(body.Detail, &msg); err != nil {
		return ""
	}
	return msg
}
