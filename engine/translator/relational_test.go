package translator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francois95140/unisql/engine/ast"
	"github.com/francois95140/unisql/engine/parser"
	"github.com/francois95140/unisql/mapping"
)

func parse(t *testing.T, input string) ast.Statement {
	t.Helper()
	stmt, err := parser.Parse(input)
	require.NoError(t, err)
	return stmt
}

func TestTranslateRelational_PostgreSQL(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		sql    string
		params []any
		rows   bool
	}{
		{
			name:   "select wildcard",
			input:  "SELECT * FROM users",
			sql:    `SELECT * FROM "users"`,
			params: []any{},
			rows:   true,
		},
		{
			name:   "select columns with where",
			input:  "SELECT name, age FROM users WHERE age >= 18",
			sql:    `SELECT "name", "age" FROM "users" WHERE "age" >= $1`,
			params: []any{int64(18)},
			rows:   true,
		},
		{
			name:   "logical where keeps parameter order",
			input:  "SELECT * FROM t WHERE a = 1 OR b = 'x' AND c <> TRUE",
			sql:    `SELECT * FROM "t" WHERE ("a" = $1 OR ("b" = $2 AND "c" <> $3))`,
			params: []any{int64(1), "x", true},
			rows:   true,
		},
		{
			name:   "null checks bind nothing",
			input:  "SELECT * FROM t WHERE a IS NULL AND b IS NOT NULL",
			sql:    `SELECT * FROM "t" WHERE ("a" IS NULL AND "b" IS NOT NULL)`,
			params: []any{},
			rows:   true,
		},
		{
			name:   "insert without columns",
			input:  "INSERT INTO users VALUES (1, 'John')",
			sql:    `INSERT INTO "users" VALUES ($1, $2)`,
			params: []any{int64(1), "John"},
		},
		{
			name:   "insert with columns",
			input:  "INSERT INTO users (id, name) VALUES (1, NULL)",
			sql:    `INSERT INTO "users" ("id", "name") VALUES ($1, $2)`,
			params: []any{int64(1), nil},
		},
		{
			name:   "update params before where params",
			input:  "UPDATE users SET name = 'Ann', age = 30 WHERE id = 7",
			sql:    `UPDATE "users" SET "name" = $1, "age" = $2 WHERE "id" = $3`,
			params: []any{"Ann", int64(30), int64(7)},
		},
		{
			name:   "delete",
			input:  "DELETE FROM users WHERE id < 3",
			sql:    `DELETE FROM "users" WHERE "id" < $1`,
			params: []any{int64(3)},
		},
		{
			name:   "create table",
			input:  "CREATE TABLE users (id INT, name VARCHAR(100))",
			sql:    `CREATE TABLE "users" ("id" INT, "name" VARCHAR(100))`,
			params: []any{},
		},
		{
			name:   "create database",
			input:  "CREATE DATABASE shop",
			sql:    `CREATE DATABASE "shop"`,
			params: []any{},
		},
		{
			name:   "drop table",
			input:  "DROP TABLE users",
			sql:    `DROP TABLE "users"`,
			params: []any{},
		},
		{
			name:   "drop database",
			input:  "DROP DATABASE shop",
			sql:    `DROP DATABASE "shop"`,
			params: []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := TranslateRelational(parse(t, tt.input), mapping.PostgreSQL)
			require.NoError(t, err)

			assert.Equal(t, tt.sql, q.SQL)
			assert.Equal(t, tt.params, q.Params)
			assert.Equal(t, tt.rows, q.ReturnsRows)
			assert.Equal(t, mapping.PostgreSQL, q.Backend())
		})
	}
}

func TestTranslateRelational_MySQL(t *testing.T) {
	q, err := TranslateRelational(parse(t, "UPDATE users SET name = 'Ann' WHERE id = 7 AND age > 1"), mapping.MySQL)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE `users` SET `name` = ? WHERE (`id` = ? AND `age` > ?)", q.SQL)
	assert.Equal(t, []any{"Ann", int64(7), int64(1)}, q.Params)
	assert.Equal(t, "UPDATE", q.Operation())
}

func TestTranslateRelational_QuotesEmbeddedQuotes(t *testing.T) {
	q, err := TranslateRelational(&ast.DropStmt{Object: ast.ObjectTable, Name: `we"ird`}, mapping.PostgreSQL)
	require.NoError(t, err)
	assert.Equal(t, `DROP TABLE "we""ird"`, q.SQL)
}

func TestTranslateRelational_RejectsBulkInsert(t *testing.T) {
	inputs := []string{
		"INSERT INTO users VALUES_BASE64 ('eyJhIjoxfQ==')",
		`INSERT INTO users VALUES_JSON ('{"a": 1}')`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			q, err := TranslateRelational(parse(t, input), mapping.PostgreSQL)
			require.Error(t, err)
			assert.Nil(t, q)

			var unsupported *UnsupportedError
			require.True(t, errors.As(err, &unsupported))
			assert.Equal(t, "BULK_INSERT", unsupported.Kind)
			assert.True(t, errors.Is(err, ErrUnsupported))
		})
	}
}

func TestTranslateRelational_ColumnCountMismatch(t *testing.T) {
	_, err := TranslateRelational(parse(t, "INSERT INTO t (a, b) VALUES (1)"), mapping.PostgreSQL)
	assert.ErrorIs(t, err, ast.ErrColumnCount)
}

func TestTranslateRelational_Idempotent(t *testing.T) {
	stmt := parse(t, "SELECT a FROM t WHERE (a = 1 OR b = 2) AND c IS NULL")

	first, err := TranslateRelational(stmt, mapping.PostgreSQL)
	require.NoError(t, err)
	second, err := TranslateRelational(stmt, mapping.PostgreSQL)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
