package translator

import (
	"errors"
	"fmt"

	"github.com/francois95140/unisql/engine/ast"
	"github.com/francois95140/unisql/mapping"
)

var (
	// ErrUnsupported marks statements a backend has no native form for
	ErrUnsupported = errors.New("unsupported operation")
)

// UnsupportedError reports a statement form a backend cannot express
type UnsupportedError struct {
	Backend mapping.Backend
	Kind    string
	Reason  string
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s is not supported by %s: %s", e.Kind, e.Backend, e.Reason)
	}
	return fmt.Sprintf("%s is not supported by %s", e.Kind, e.Backend)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// Query is a translated statement ready for an executor. Implemented by
// *RelationalQuery, *DocumentQuery and *GraphQuery only.
type Query interface {
	query()
	// Backend is the store the query was translated for
	Backend() mapping.Backend
	// Operation is the backend's native verb, from mapping.OperationMap
	Operation() string
	// String renders the query for display
	String() string
}

// Translate routes a statement to the translator of its backend
func Translate(stmt ast.Statement, backend mapping.Backend) (Query, error) {
	switch backend {
	case mapping.PostgreSQL, mapping.MySQL:
		return TranslateRelational(stmt, backend)

	case mapping.MongoDB:
		return TranslateDocument(stmt)

	case mapping.Neo4j:
		return TranslateGraph(stmt)

	default:
		return nil, fmt.Errorf("%w: %s (supported: %v)", mapping.ErrUnknownBackend, backend, mapping.SupportedBackends)
	}
}

// checkSupported rejects statement kinds the backend has no verb for
func checkSupported(backend mapping.Backend, stmt ast.Statement) (string, error) {
	kind := stmt.Kind()
	if !mapping.IsSupportedOperation(backend, kind) {
		return "", &UnsupportedError{Backend: backend, Kind: kind}
	}
	return mapping.OperationMap[backend][kind], nil
}
