package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a task or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalid is returned for input rejected locally or by the backend.
	ErrInvalid = errors.New("invalid input")

	// ErrUnauthorized is returned when the backend rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError carries per-field messages from local validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = e.Fields[name]
	}
	return strings.Join(parts, "; ")
}

// Unwrap makes errors.Is(err, ErrInvalid) hold for validation failures.
func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Field returns the message for a field, or "" if it passed.
func (e *ValidationError) Field(name string) string {
	return e.Fields[name]
}

type fieldErrors map[string]string

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
