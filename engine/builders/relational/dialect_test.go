package relational

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/francois95140/unisql/engine/ast"
	"github.com/francois95140/unisql/mapping"
)

func TestDialect_QuoteIdentifier(t *testing.T) {
	tests := []struct {
		dialect Dialect
		name    string
		want    string
	}{
		{PostgreSQL, "users", `"users"`},
		{PostgreSQL, `a"b`, `"a""b"`},
		{PostgreSQL, "select", `"select"`},
		{MySQL, "users", "`users`"},
		{MySQL, "a`b", "`a``b`"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.QuoteIdentifier(tt.name))
		})
	}
}

func TestDialectFor(t *testing.T) {
	d, ok := DialectFor(mapping.PostgreSQL)
	assert.True(t, ok)
	assert.Equal(t, "$3", d.Placeholder(3))

	d, ok = DialectFor(mapping.MySQL)
	assert.True(t, ok)
	assert.Equal(t, "?", d.Placeholder(3))

	_, ok = DialectFor(mapping.MongoDB)
	assert.False(t, ok)
}

func TestBuilder_BindsInOrder(t *testing.T) {
	b := NewBuilder(PostgreSQL)
	assert.Equal(t, []any{}, b.Params())

	assert.Equal(t, "$1", b.Bind("a"))
	assert.Equal(t, "$2", b.Bind(int64(2)))
	assert.Equal(t, []any{"a", int64(2)}, b.Params())
}

func TestBuildWhereClause_Nested(t *testing.T) {
	cond := &ast.Logical{
		Operator: ast.OpOr,
		Left: &ast.Logical{
			Operator: ast.OpAnd,
			Left:     &ast.Comparison{Field: "a", Operator: ast.OpGt, Value: ast.NumberValue(1)},
			Right:    &ast.NullCheck{Field: "b", Negated: true},
		},
		Right: &ast.Comparison{Field: "c", Operator: ast.OpLte, Value: ast.StringValue("z")},
	}

	b := NewBuilder(MySQL)
	assert.Equal(t, "((`a` > ? AND `b` IS NOT NULL) OR `c` <= ?)", BuildWhereClause(b, cond))
	assert.Equal(t, []any{int64(1), "z"}, b.Params())
}

func TestBuildCreateTableSQL(t *testing.T) {
	b := NewBuilder(MySQL)
	sql := BuildCreateTableSQL(b, "items", []ast.FieldDef{
		{Name: "id", Type: "INT"},
		{Name: "price", Type: "NUMERIC(10,2)"},
	})
	assert.Equal(t, "CREATE TABLE `items` (`id` INT, `price` NUMERIC(10,2))", sql)
	assert.Empty(t, b.Params())
}
