package validator

import (
	"fmt"

	"github.com/francois95140/unisql/engine/translator"
	"github.com/francois95140/unisql/mapping"
)

// ValidationError reports a generated query that the backend's own grammar
// rejects
type ValidationError struct {
	Backend mapping.Backend
	Query   string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("generated %s query is invalid: %v", e.Backend, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks a translated query before execution. Graph queries have no
// grammar available in process and always pass.
func Validate(q translator.Query) error {
	var err error
	switch query := q.(type) {
	case *translator.RelationalQuery:
		err = ValidateSQL(query.SQL, query.Dialect)
	case *translator.DocumentQuery:
		err = ValidateMongoDB(query)
	case *translator.GraphQuery:
		return nil
	default:
		return fmt.Errorf("unsupported query type: %T", q)
	}
	if err != nil {
		return &ValidationError{Backend: q.Backend(), Query: q.String(), Err: err}
	}
	return nil
}

// ValidateSQL validates SQL text based on relational backend
func ValidateSQL(query string, backend mapping.Backend) error {
	if !backend.IsRelational() {
		return fmt.Errorf("%w: %s is not relational", mapping.ErrUnknownBackend, backend)
	}
	if backend == mapping.MySQL {
		return ValidateMySQL(query)
	}
	return ValidatePostgreSQL(query)
}
