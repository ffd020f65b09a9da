package pipeline

import (
	"context"
	"errors"
	"fmt"
)

// SelectionError reports an invalid choice in the file selector.
type SelectionError struct {
	Input  string
	Reason string
}

func (e *SelectionError) Error() string {
	if e.Input == "" {
		return "invalid selection: " + e.Reason
	}
	return fmt.Sprintf("invalid selection %q: %s", e.Input, e.Reason)
}

// DecodeError reports an image that could not be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RenderError reports a failure while drawing, saving or showing a report.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Recoverable reports whether the interactive loop may continue with the
// next image after err. Cancellation and unknown errors are fatal.
func Recoverable(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var selErr *SelectionError
	var decErr *DecodeError
	var renErr *RenderError
	return errors.As(err, &selErr) || errors.As(err, &decErr) || errors.As(err, &renErr)
}
