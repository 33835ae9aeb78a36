package cypher

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/francois95140/unisql/engine/ast"
	"github.com/francois95140/unisql/mapping"
)

// NodeVar is the variable bound to the matched or created node
const NodeVar = "n"

// Literal renders a value inline: strings single-quoted with ' and \
// escaped, numbers and booleans bare, null as null
func Literal(v ast.Value) string {
	switch v.Kind {
	case ast.ValueString:
		return QuoteString(v.Str)
	case ast.ValueNumber:
		return strconv.FormatInt(v.Num, 10)
	case ast.ValueBoolean:
		return strconv.FormatBool(v.Bool)
	}
	return "null"
}

// QuoteString single-quotes s
func QuoteString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// Property renders n.field
func Property(field string) string {
	return NodeVar + "." + field
}

// BuildNodePattern handles: (n:Label)
func BuildNodePattern(label string) string {
	return fmt.Sprintf("(%s:%s)", NodeVar, label)
}

// BuildNodePatternWithProperties handles: (n:Label {k: v, ...})
func BuildNodePatternWithProperties(label string, pairs []ast.Pair) string {
	return fmt.Sprintf("(%s:%s %s)", NodeVar, label, BuildPropertyMap(pairs))
}

// BuildPropertyMap handles: {k: v, ...}
func BuildPropertyMap(pairs []ast.Pair) string {
	props := make([]string, len(pairs))
	for i, p := range pairs {
		props[i] = p.Name + ": " + Literal(p.Value)
	}
	return "{" + strings.Join(props, ", ") + "}"
}

// BuildPredicate renders a single comparison or null check against n.
// The second result is false for any other condition.
func BuildPredicate(cond ast.Condition) (string, bool) {
	switch c := cond.(type) {
	case *ast.Comparison:
		op := mapping.OperatorMap[mapping.Neo4j][string(c.Operator)]
		return fmt.Sprintf("%s %s %s", Property(c.Field), op, Literal(c.Value)), true
	case *ast.NullCheck:
		op := mapping.OperatorMap[mapping.Neo4j]["IS_NULL"]
		if c.Negated {
			op = mapping.OperatorMap[mapping.Neo4j]["IS_NOT_NULL"]
		}
		return fmt.Sprintf("%s %s", Property(c.Field), op), true
	}
	return "", false
}

// BuildSetClause handles: n.a = v, n.b = w
func BuildSetClause(assignments []ast.Assignment) string {
	parts := make([]string, len(assignments))
	for i, a := range assignments {
		parts[i] = fmt.Sprintf("%s = %s", Property(a.Field), Literal(a.Value))
	}
	return strings.Join(parts, ", ")
}

// BuildReturnClause handles: RETURN n | RETURN n.a, n.b
func BuildReturnClause(columns []string) string {
	if columns == nil {
		return "RETURN " + NodeVar
	}
	props := make([]string, len(columns))
	for i, c := range columns {
		props[i] = Property(c)
	}
	return "RETURN " + strings.Join(props, ", ")
}
