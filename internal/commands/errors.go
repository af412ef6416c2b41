package commands

import (
	"errors"
	"fmt"
	"io"

	"tasktrack/internal/exitcode"
	"tasktrack/internal/output"
	"tasktrack/internal/service"
)

// exitCodeFor maps a service error to an exit code.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInvalid):
		return exitcode.UserError
	case errors.Is(err, service.ErrUnauthorized):
		return exitcode.AuthError
	default:
		return exitcode.BackendError
	}
}

// reportError prints err and returns the matching exit code.
func reportError(errOut io.Writer, err error) int {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		output.FormatFieldErrors(errOut, verr.Fields)
	case errors.Is(err, service.ErrUnauthorized):
		fmt.Fprintf(errOut, "error: auth error: %v (run: tasktrack login)\n", err)
	case exitCodeFor(err) == exitcode.BackendError:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitCodeFor(err)
}

// reportFormError prints local validation errors; submission failures have
// already been shown by the notifier.
func reportFormError(errOut io.Writer, err error) int {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		output.FormatFieldErrors(errOut, verr.Fields)
	}
	return exitCodeFor(err)
}
