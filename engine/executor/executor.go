package executor

import (
	"context"
	"fmt"

	"github.com/francois95140/unisql/engine/translator"
	"github.com/francois95140/unisql/mapping"
)

// Provider opens sessions against one backend. Connections are never retried.
type Provider interface {
	Backend() mapping.Backend
	Open(ctx context.Context) (Session, error)
}

// Session runs translated queries over one open connection. A session is
// opened per command and closed when the command finishes.
type Session interface {
	Run(ctx context.Context, q translator.Query) (*Result, error)
	Close(ctx context.Context) error
}

// Result is the outcome of one command. Records is set for reads, the other
// fields for writes. Message is a human-readable summary.
type Result struct {
	Records      []map[string]any `json:"records,omitempty"`
	RowsAffected int64            `json:"rows_affected"`
	InsertedIDs  []any            `json:"inserted_ids,omitempty"`
	Message      string           `json:"message"`
}

// ============================================================================
// ERRORS
// ============================================================================

// ConnectionError reports a backend that could not be reached
type ConnectionError struct {
	Backend mapping.Backend
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot connect to %s: %v", e.Backend, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ExecutionError reports a query the backend rejected
type ExecutionError struct {
	Backend mapping.Backend
	Query   string
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s execution failed: %v", e.Backend, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// wrongQuery reports a query handed to a session of another backend
func wrongQuery(backend mapping.Backend, q translator.Query) error {
	return &ExecutionError{
		Backend: backend,
		Query:   q.String(),
		Err:     fmt.Errorf("cannot run %s query", q.Backend()),
	}
}
