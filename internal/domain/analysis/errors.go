package analysis

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates no request exists for the given id.
var ErrNotFound = errors.New("analysis not found")

// ValidationError covers bad uploads: wrong extension, empty query,
// unknown analysis type. Surfaced verbatim as 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DocumentError covers missing/unreadable/empty PDFs. Surfaced as 400, never retried.
type DocumentError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("document error: %s: %v", e.Reason, e.Err)
	}
	return "document error: " + e.Reason
}

func (e *DocumentError) Unwrap() error { return e.Err }

// OrchestrationError covers LLM backend failures and exceeded agent bounds.
// The underlying cause is logged; callers see a sanitized 500.
type OrchestrationError struct {
	Task string
	Err  error
}

func (e *OrchestrationError) Error() string {
	return fmt.Sprintf("orchestration failed at task %q: %v", e.Task, e.Err)
}

func (e *OrchestrationError) Unwrap() error { return e.Err }

// PersistenceError covers datastore write failures. A completed analysis is
// still returned to the caller when only the result write fails.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
