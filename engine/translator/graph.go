package translator

import (
	"strings"

	"github.com/francois95140/unisql/engine/ast"
	"github.com/francois95140/unisql/engine/builders/cypher"
	"github.com/francois95140/unisql/mapping"
)

// SyntheticPropertyPrefix names values inserted without a column list
const SyntheticPropertyPrefix = "prop"

// GraphQuery is a Cypher statement with inline literals
type GraphQuery struct {
	Verb        string
	Cypher      string
	ReturnsRows bool
}

func (q *GraphQuery) query()                   {}
func (q *GraphQuery) Backend() mapping.Backend { return mapping.Neo4j }
func (q *GraphQuery) Operation() string        { return q.Verb }
func (q *GraphQuery) String() string           { return q.Cypher }

// TranslateGraph renders a statement as Cypher. The table becomes the node
// label. Only a single comparison or null check is accepted as WHERE.
func TranslateGraph(stmt ast.Statement) (*GraphQuery, error) {
	verb, err := checkSupported(mapping.Neo4j, stmt)
	if err != nil {
		return nil, err
	}

	q := &GraphQuery{Verb: verb}
	var parts []string

	switch s := stmt.(type) {
	case *ast.SelectStmt:
		where, err := graphWhere(s.Where)
		if err != nil {
			return nil, err
		}
		parts = append(parts, "MATCH "+cypher.BuildNodePattern(s.Table))
		parts = append(parts, where...)
		parts = append(parts, cypher.BuildReturnClause(s.Columns))
		q.ReturnsRows = true

	case *ast.InsertStmt:
		form, ok := s.Form.(*ast.ColumnsAndValues)
		if !ok {
			return nil, &UnsupportedError{Backend: mapping.Neo4j, Kind: s.Kind()}
		}
		pairs, err := form.Pairs(SyntheticPropertyPrefix)
		if err != nil {
			return nil, err
		}
		parts = append(parts, "CREATE "+cypher.BuildNodePatternWithProperties(s.Table, pairs))
		parts = append(parts, "RETURN "+cypher.NodeVar)
		q.ReturnsRows = true

	case *ast.UpdateStmt:
		where, err := graphWhere(s.Where)
		if err != nil {
			return nil, err
		}
		parts = append(parts, "MATCH "+cypher.BuildNodePattern(s.Table))
		parts = append(parts, where...)
		parts = append(parts, "SET "+cypher.BuildSetClause(s.Assignments))

	case *ast.DeleteStmt:
		where, err := graphWhere(s.Where)
		if err != nil {
			return nil, err
		}
		parts = append(parts, "MATCH "+cypher.BuildNodePattern(s.Table))
		parts = append(parts, where...)
		parts = append(parts, "DELETE "+cypher.NodeVar)

	default:
		return nil, &UnsupportedError{Backend: mapping.Neo4j, Kind: stmt.Kind()}
	}

	q.Cypher = strings.Join(parts, " ")
	return q, nil
}

// graphWhere renders the optional WHERE clause as zero or one part
func graphWhere(cond ast.Condition) ([]string, error) {
	if cond == nil {
		return nil, nil
	}
	predicate, ok := cypher.BuildPredicate(cond)
	if !ok {
		return nil, &UnsupportedError{
			Backend: mapping.Neo4j,
			Kind:    "WHERE",
			Reason:  "only a single comparison or null check is supported",
		}
	}
	return []string{"WHERE " + predicate}, nil
}
