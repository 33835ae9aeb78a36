package mapping

import (
	"errors"
	"fmt"
	"strings"
)

// Backend identifies one of the query systems a command can be translated for
type Backend string

const (
	PostgreSQL Backend = "PostgreSQL"
	MySQL      Backend = "MySQL"
	MongoDB    Backend = "MongoDB"
	Neo4j      Backend = "Neo4j"
)

// ErrUnknownBackend is returned when a backend tag matches no alias
var ErrUnknownBackend = errors.New("unknown backend")

// SupportedBackends lists every backend in a stable order
var SupportedBackends = []Backend{
	PostgreSQL,
	MySQL,
	MongoDB,
	Neo4j,
}

// BackendAliases maps lower-cased caller tags to backends
var BackendAliases = map[string]Backend{
	"postgres":   PostgreSQL,
	"postgresql": PostgreSQL,
	"pg":         PostgreSQL,
	"sql":        PostgreSQL,
	"mysql":      MySQL,
	"mongo":      MongoDB,
	"mongodb":    MongoDB,
	"neo":        Neo4j,
	"neo4j":      Neo4j,
	"graph":      Neo4j,
}

// ResolveBackend maps a caller tag (case-insensitive) to a backend
func ResolveBackend(tag string) (Backend, error) {
	if b, ok := BackendAliases[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return b, nil
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnknownBackend, tag, strings.Join(aliasList(), ", "))
}

// IsRelational reports whether the backend speaks SQL
func (b Backend) IsRelational() bool {
	return b == PostgreSQL || b == MySQL
}

// String returns the backend name
func (b Backend) String() string {
	return string(b)
}

func aliasList() []string {
	return []string{"postgres", "postgresql", "pg", "sql", "mysql", "mongo", "mongodb", "neo", "neo4j", "graph"}
}
