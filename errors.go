package unisql

import (
	"errors"
	"fmt"

	"github.com/francois95140/unisql/engine/ast"
	"github.com/francois95140/unisql/engine/builders/mongodb"
	"github.com/francois95140/unisql/engine/executor"
	"github.com/francois95140/unisql/engine/lexer"
	"github.com/francois95140/unisql/engine/translator"
	"github.com/francois95140/unisql/engine/validator"
	"github.com/francois95140/unisql/mapping"
)

// ErrorKind classifies a failed command
type ErrorKind string

const (
	KindBackend     ErrorKind = "backend"
	KindParse       ErrorKind = "parse"
	KindPayload     ErrorKind = "payload"
	KindUnsupported ErrorKind = "unsupported"
	KindValidation  ErrorKind = "validation"
	KindConnection  ErrorKind = "connection"
	KindExecution   ErrorKind = "execution"
	KindInput       ErrorKind = "input" // batch source could not be read
)

// ErrNoProvider is returned when no connection is configured for a backend
var ErrNoProvider = errors.New("no connection configured")

// Error is returned by every Client method. Backend is empty when the
// backend tag itself could not be resolved.
type Error struct {
	Kind    ErrorKind
	Backend mapping.Backend
	Err     error
}

func (e *Error) Error() string {
	if e.Backend == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s error: %v", e.Backend, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrap classifies err by the layer that produced it
func wrap(backend mapping.Backend, err error) error {
	if err == nil {
		return nil
	}
	var already *Error
	if errors.As(err, &already) {
		return err
	}
	return &Error{Kind: classify(err), Backend: backend, Err: err}
}

func classify(err error) ErrorKind {
	var (
		parseErr   *lexer.ParseError
		payloadErr *mongodb.PayloadError
		validErr   *validator.ValidationError
		connErr    *executor.ConnectionError
		execErr    *executor.ExecutionError
	)
	switch {
	case errors.Is(err, mapping.ErrUnknownBackend):
		return KindBackend
	case errors.As(err, &parseErr), errors.Is(err, ast.ErrColumnCount):
		return KindParse
	case errors.As(err, &payloadErr):
		return KindPayload
	case errors.Is(err, translator.ErrUnsupported):
		return KindUnsupported
	case errors.As(err, &validErr):
		return KindValidation
	case errors.As(err, &connErr), errors.Is(err, ErrNoProvider):
		return KindConnection
	case errors.As(err, &execErr):
		return KindExecution
	}
	return KindExecution
}
