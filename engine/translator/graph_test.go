package translator

import (
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francois95140/unisql/engine/ast"
	"github.com/francois95140/unisql/mapping"
)

func TestTranslateGraph_Golden(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))

	tests := []struct {
		golden string
		stmt   ast.Statement
		verb   string
		rows   bool
	}{
		{"graph_select_all", parse(t, "SELECT * FROM users"), "MATCH", true},
		{"graph_select_where", parse(t, "SELECT name, age FROM users WHERE age > 18"), "MATCH", true},
		{"graph_select_null", parse(t, "SELECT * FROM users WHERE email IS NULL"), "MATCH", true},
		{"graph_insert_synthetic", parse(t, "INSERT INTO users VALUES (1, 'John', TRUE)"), "CREATE", true},
		{
			"graph_insert_columns",
			&ast.InsertStmt{Table: "users", Form: &ast.ColumnsAndValues{
				Columns: []string{"id", "name", "note"},
				Values:  []ast.Value{ast.NumberValue(1), ast.StringValue("O'Neil"), ast.NullValue()},
			}},
			"CREATE",
			true,
		},
		{"graph_update", parse(t, "UPDATE users SET name = 'Ann', active = FALSE WHERE id = 7"), "MATCH SET", false},
		{"graph_delete", parse(t, "DELETE FROM users WHERE age <> 3"), "MATCH DELETE", false},
		{"graph_delete_all", parse(t, "DELETE FROM users"), "MATCH DELETE", false},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			q, err := TranslateGraph(tt.stmt)
			require.NoError(t, err)

			assert.Equal(t, tt.verb, q.Operation())
			assert.Equal(t, tt.rows, q.ReturnsRows)
			g.Assert(t, tt.golden, []byte(q.Cypher))
		})
	}
}

func TestTranslateGraph_Unsupported(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  string
	}{
		{"logical where", "SELECT * FROM users WHERE a = 1 AND b = 2", "WHERE"},
		{"logical where on delete", "DELETE FROM users WHERE a = 1 OR b = 2", "WHERE"},
		{"create table", "CREATE TABLE users (id INT)", "CREATE_TABLE"},
		{"create database", "CREATE DATABASE shop", "CREATE_DATABASE"},
		{"drop table", "DROP TABLE users", "DROP_TABLE"},
		{"drop database", "DROP DATABASE shop", "DROP_DATABASE"},
		{"base64 bulk", "INSERT INTO users VALUES_BASE64 ('e30=')", "BULK_INSERT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := TranslateGraph(parse(t, tt.input))
			require.Error(t, err)
			assert.Nil(t, q)

			var unsupported *UnsupportedError
			require.True(t, errors.As(err, &unsupported))
			assert.Equal(t, mapping.Neo4j, unsupported.Backend)
			assert.Equal(t, tt.kind, unsupported.Kind)
			assert.ErrorIs(t, err, ErrUnsupported)
		})
	}
}

func TestTranslateGraph_ColumnCountMismatch(t *testing.T) {
	_, err := TranslateGraph(parse(t, "INSERT INTO users (a, b, c) VALUES (1, 2)"))
	assert.ErrorIs(t, err, ast.ErrColumnCount)
}

func TestTranslate_Dispatch(t *testing.T) {
	stmt := parse(t, "SELECT * FROM users WHERE id = 1")

	for _, backend := range mapping.SupportedBackends {
		t.Run(backend.String(), func(t *testing.T) {
			q, err := Translate(stmt, backend)
			require.NoError(t, err)
			assert.Equal(t, backend, q.Backend())
			assert.NotEmpty(t, q.String())
			assert.Equal(t, mapping.OperationMap[backend]["SELECT"], q.Operation())
		})
	}

	t.Run("unknown backend", func(t *testing.T) {
		_, err := Translate(stmt, mapping.Backend("Oracle"))
		assert.ErrorIs(t, err, mapping.ErrUnknownBackend)
	})
}

func TestUnsupportedError_Message(t *testing.T) {
	err := &UnsupportedError{Backend: mapping.Neo4j, Kind: "DROP_TABLE"}
	assert.Equal(t, "DROP_TABLE is not supported by Neo4j", err.Error())

	err.Reason = "no schema"
	assert.Equal(t, "DROP_TABLE is not supported by Neo4j: no schema", err.Error())
}

func TestRelationalQuery_String(t *testing.T) {
	q := &RelationalQuery{SQL: `SELECT * FROM "t" WHERE "a" = $1`, Params: []any{int64(5)}}
	assert.Equal(t, `SELECT * FROM "t" WHERE "a" = $1 -- params: [5]`, q.String())

	q = &RelationalQuery{SQL: `DROP TABLE "t"`, Params: []any{}}
	assert.Equal(t, `DROP TABLE "t"`, q.String())
}

func TestTranslateGraph_Idempotent(t *testing.T) {
	inputs := []string{
		"SELECT name FROM users WHERE age >= 18",
		"INSERT INTO users VALUES (1, 'John')",
		"DELETE FROM users WHERE email IS NOT NULL",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			stmt := parse(t, input)

			first, err := TranslateGraph(stmt)
			require.NoError(t, err)
			second, err := TranslateGraph(stmt)
			require.NoError(t, err)

			assert.Equal(t, first.Cypher, second.Cypher)
			assert.Equal(t, first, second)
		})
	}
}
