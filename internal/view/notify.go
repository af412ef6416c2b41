// Package view holds the dashboard and form logic that sits between the
// terminal commands and the stores. Views read store state and dispatch
// store operations; they never modify store state themselves.
package view

import (
	"fmt"
	"io"
)

// Notifier shows transient success and failure messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// WriterNotifier prints notifications as lines. Success messages are
// suppressed in quiet mode.
type WriterNotifier struct {
	Out    io.Writer
	ErrOut io.Writer
	Quiet  bool
}

// Success prints msg to Out.
func (n *WriterNotifier) Success(msg string) {
	if n.Quiet {
		return
	}
	fmt.Fprintln(n.Out, msg)
}

// Error prints msg to ErrOut with an "error: " prefix.
func (n *WriterNotifier) Error(msg string) {
	fmt.Fprintf(n.ErrOut, "error: %s\n", msg)
}
