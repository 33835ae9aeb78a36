package executor

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/francois95140/unisql/engine/translator"
	"github.com/francois95140/unisql/mapping"
)

// driverNames maps relational backends to database/sql driver names
var driverNames = map[mapping.Backend]string{
	mapping.PostgreSQL: "pgx",
	mapping.MySQL:      "mysql",
}

// SQLProvider opens a fresh *sql.DB per session
type SQLProvider struct {
	backend mapping.Backend
	dsn     string
	logger  *slog.Logger
}

// NewSQLProvider creates a provider for PostgreSQL or MySQL.
// If logger is nil, a discard logger is used.
func NewSQLProvider(backend mapping.Backend, dsn string, logger *slog.Logger) (*SQLProvider, error) {
	if _, ok := driverNames[backend]; !ok {
		return nil, fmt.Errorf("%w: %s is not relational", mapping.ErrUnknownBackend, backend)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLProvider{backend: backend, dsn: dsn, logger: logger}, nil
}

// Backend returns the relational backend served
func (p *SQLProvider) Backend() mapping.Backend {
	return p.backend
}

// Open connects and pings
func (p *SQLProvider) Open(ctx context.Context) (Session, error) {
	p.logger.Debug("connecting", slog.String("backend", p.backend.String()))

	db, err := sql.Open(driverNames[p.backend], p.dsn)
	if err != nil {
		return nil, &ConnectionError{Backend: p.backend, Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &ConnectionError{Backend: p.backend, Err: err}
	}
	return NewSQLSession(p.backend, db, p.logger), nil
}

// SQLSession runs relational queries on one *sql.DB and closes it on Close
type SQLSession struct {
	backend mapping.Backend
	db      *sql.DB
	logger  *slog.Logger
}

// NewSQLSession wraps an open database. The session owns db.
func NewSQLSession(backend mapping.Backend, db *sql.DB, logger *slog.Logger) *SQLSession {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLSession{backend: backend, db: db, logger: logger}
}

// Run executes a *translator.RelationalQuery with its bound parameters
func (s *SQLSession) Run(ctx context.Context, q translator.Query) (*Result, error) {
	rq, ok := q.(*translator.RelationalQuery)
	if !ok {
		return nil, wrongQuery(s.backend, q)
	}

	s.logger.Debug("executing sql",
		slog.String("sql", rq.SQL),
		slog.Int("params", len(rq.Params)))

	if rq.ReturnsRows {
		rows, err := s.db.QueryContext(ctx, rq.SQL, rq.Params...)
		if err != nil {
			return nil, &ExecutionError{Backend: s.backend, Query: rq.String(), Err: err}
		}
		defer func() { _ = rows.Close() }()

		records, err := rowsToMaps(rows)
		if err != nil {
			return nil, &ExecutionError{Backend: s.backend, Query: rq.String(), Err: err}
		}
		return &Result{Records: records, Message: Count(int64(len(records)), "row")}, nil
	}

	res, err := s.db.ExecContext(ctx, rq.SQL, rq.Params...)
	if err != nil {
		return nil, &ExecutionError{Backend: s.backend, Query: rq.String(), Err: err}
	}
	affected, _ := res.RowsAffected()

	result := &Result{RowsAffected: affected}
	switch rq.Verb {
	case "INSERT", "UPDATE", "DELETE":
		result.Message = Summary(affected, "row", "affected")
	default:
		result.Message = rq.Verb + " executed"
	}
	return result, nil
}

// Close closes the database
func (s *SQLSession) Close(context.Context) error {
	return s.db.Close()
}

// rowsToMaps scans every row into a column-name keyed map. Byte slices are
// returned as strings. Never nil.
func rowsToMaps(rows *sql.Rows) ([]map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	results := []map[string]any{}

	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			val := values[i]
			if b, ok := val.([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = val
			}
		}
		results = append(results, row)
	}

	return results, rows.Err()
}
