package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"tasktrack/internal/app"
	"tasktrack/internal/service"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num int    // 1-based position in the unfiltered task list, 0 if ID is set
	ID  string // task ID, "" if Num is set
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. No args, or a blank first arg → error: task reference required
// 2. All digits → position in the unfiltered task list
// 3. Anything else → task ID
// 4. More than one arg → error: unexpected argument
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	arg := strings.TrimSpace(args[0])
	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{Num: num}, nil
	}
	return TaskRef{ID: arg}, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// errOutOfRange is returned when a position is past the end of the list.
type errOutOfRange int

func (e errOutOfRange) Error() string {
	return fmt.Sprintf("task number out of range: %d", int(e))
}

// Unwrap makes out-of-range positions count as not found.
func (e errOutOfRange) Unwrap() error { return service.ErrNotFound }

// resolveTaskID turns a reference into a task ID. Positions are looked up
// in a fresh unfiltered listing.
func resolveTaskID(ctx context.Context, a *app.App, ref TaskRef) (string, error) {
	if ref.ID != "" {
		return ref.ID, nil
	}
	if ref.Num < 1 {
		return "", errOutOfRange(ref.Num)
	}
	tasks, err := a.Tasks.List(ctx, service.TaskFilter{})
	if err != nil {
		return "", err
	}
	if ref.Num > len(tasks) {
		return "", errOutOfRange(ref.Num)
	}
	return tasks[ref.Num-1].ID, nil
}

// resolveTask fetches the referenced task and makes it the current task.
func resolveTask(ctx context.Context, a *app.App, ref TaskRef) (service.Task, error) {
	id, err := resolveTaskID(ctx, a, ref)
	if err != nil {
		return service.Task{}, err
	}
	return a.Tasks.Get(ctx, id)
}
