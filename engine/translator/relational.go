package translator

import (
	"fmt"

	"github.com/francois95140/unisql/engine/ast"
	"github.com/francois95140/unisql/engine/builders/relational"
	"github.com/francois95140/unisql/mapping"
)

// RelationalQuery is parameterized SQL for PostgreSQL or MySQL
type RelationalQuery struct {
	Dialect     mapping.Backend
	Verb        string
	SQL         string
	Params      []any
	ReturnsRows bool
}

func (q *RelationalQuery) query()                   {}
func (q *RelationalQuery) Backend() mapping.Backend { return q.Dialect }
func (q *RelationalQuery) Operation() string        { return q.Verb }

func (q *RelationalQuery) String() string {
	if len(q.Params) == 0 {
		return q.SQL
	}
	return fmt.Sprintf("%s -- params: %v", q.SQL, q.Params)
}

// TranslateRelational renders a statement as SQL for a relational backend.
// Identifiers are always quoted and values always bound as parameters.
func TranslateRelational(stmt ast.Statement, backend mapping.Backend) (*RelationalQuery, error) {
	dialect, ok := relational.DialectFor(backend)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not relational", mapping.ErrUnknownBackend, backend)
	}

	verb, err := checkSupported(backend, stmt)
	if err != nil {
		return nil, err
	}

	b := relational.NewBuilder(dialect)
	q := &RelationalQuery{Dialect: backend, Verb: verb}

	switch s := stmt.(type) {
	case *ast.SelectStmt:
		q.SQL = relational.BuildSelectSQL(b, s)
		q.ReturnsRows = true

	case *ast.InsertStmt:
		form, ok := s.Form.(*ast.ColumnsAndValues)
		if !ok {
			return nil, &UnsupportedError{Backend: backend, Kind: s.Kind()}
		}
		if err := form.Validate(); err != nil {
			return nil, err
		}
		q.SQL = relational.BuildInsertSQL(b, s.Table, form)

	case *ast.UpdateStmt:
		q.SQL = relational.BuildUpdateSQL(b, s)

	case *ast.DeleteStmt:
		q.SQL = relational.BuildDeleteSQL(b, s)

	case *ast.CreateStmt:
		if s.Object == ast.ObjectDatabase {
			q.SQL = relational.BuildCreateDatabaseSQL(b, s.Name)
		} else {
			q.SQL = relational.BuildCreateTableSQL(b, s.Name, s.Fields)
		}

	case *ast.DropStmt:
		if s.Object == ast.ObjectDatabase {
			q.SQL = relational.BuildDropDatabaseSQL(b, s.Name)
		} else {
			q.SQL = relational.BuildDropTableSQL(b, s.Name)
		}

	default:
		return nil, &UnsupportedError{Backend: backend, Kind: stmt.Kind()}
	}

	q.Params = b.Params()
	return q, nil
}
