package unisql

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francois95140/unisql/engine/executor"
	"github.com/francois95140/unisql/engine/translator"
	"github.com/francois95140/unisql/internal/testutil"
	"github.com/francois95140/unisql/mapping"
)

// mockProvider hands out sqlmock-backed sessions
type mockProvider struct {
	backend mapping.Backend
	db      *sql.DB
	openErr error
	opened  int
}

func (p *mockProvider) Backend() mapping.Backend { return p.backend }

func (p *mockProvider) Open(context.Context) (executor.Session, error) {
	p.opened++
	if p.openErr != nil {
		return nil, &executor.ConnectionError{Backend: p.backend, Err: p.openErr}
	}
	return executor.NewSQLSession(p.backend, p.db, nil), nil
}

func newMockClient(t *testing.T, opts ...Option) (*Client, sqlmock.Sqlmock, *mockProvider) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	p := &mockProvider{backend: mapping.PostgreSQL, db: db}
	opts = append([]Option{WithProvider(p), WithLogger(testutil.NewTestLogger(t))}, opts...)
	return New(opts...), mock, p
}

func TestClient_Translate(t *testing.T) {
	c := New()

	tests := []struct {
		tag  string
		want string
	}{
		{"postgres", `SELECT "name" FROM "users" WHERE "id" = $1 -- params: [7]`},
		{"mysql", "SELECT `name` FROM `users` WHERE `id` = ? -- params: [7]"},
		{"mongo", `db.users.find({"id":{"$eq":7}}, {"name":1,"_id":0})`},
		{"neo4j", "MATCH (n:users) WHERE n.id = 7 RETURN n.name"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			q, err := c.Translate(tt.tag, "SELECT name FROM users WHERE id = 7")
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.String())
		})
	}
}

func TestClient_TranslateErrors(t *testing.T) {
	c := New()

	tests := []struct {
		name    string
		tag     string
		command string
		kind    ErrorKind
	}{
		{"unknown backend", "oracle", "SELECT * FROM t", KindBackend},
		{"parse", "postgres", "SELECT FROM", KindParse},
		{"column count", "postgres", "INSERT INTO t (a, b) VALUES (1)", KindParse},
		{"bulk on sql", "postgres", "INSERT INTO t VALUES_JSON ('{\"a\": 1}')", KindUnsupported},
		{"logical on graph", "neo4j", "SELECT * FROM t WHERE a = 1 OR b = 2", KindUnsupported},
		{"bad payload", "mongo", "INSERT INTO t VALUES_BASE64 ('not base64!')", KindPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Translate(tt.tag, tt.command)

			var uerr *Error
			require.ErrorAs(t, err, &uerr)
			assert.Equal(t, tt.kind, uerr.Kind)
		})
	}
}

func TestClient_TranslateWithValidation(t *testing.T) {
	c := New(WithValidation(true))

	q, err := c.Translate("mysql", "UPDATE users SET a = 1 WHERE b IS NULL")
	require.NoError(t, err)
	assert.Equal(t, "UPDATE", q.Operation())
}

func TestClient_Execute(t *testing.T) {
	c, mock, p := newMockClient(t)

	mock.ExpectQuery(`SELECT * FROM "users" WHERE "age" > $1`).
		WithArgs(int64(30)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Ann"))
	mock.ExpectClose()

	result, err := c.Execute(context.Background(), "pg", "SELECT * FROM users WHERE age > 30")
	require.NoError(t, err)

	assert.Equal(t, []map[string]any{{"id": int64(1), "name": "Ann"}}, result.Records)
	assert.Equal(t, 1, p.opened)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_ExecuteErrors(t *testing.T) {
	t.Run("no provider", func(t *testing.T) {
		_, err := New().Execute(context.Background(), "mongo", "SELECT * FROM t")

		var uerr *Error
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, KindConnection, uerr.Kind)
		assert.Equal(t, mapping.MongoDB, uerr.Backend)
		assert.ErrorIs(t, err, ErrNoProvider)
	})

	t.Run("connection refused", func(t *testing.T) {
		c, _, p := newMockClient(t)
		p.openErr = errors.New("connection refused")

		_, err := c.Execute(context.Background(), "postgres", "SELECT * FROM t")

		var uerr *Error
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, KindConnection, uerr.Kind)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("execution failure", func(t *testing.T) {
		c, mock, _ := newMockClient(t)
		mock.ExpectExec(`DELETE FROM "t"`).WillReturnError(errors.New("permission denied"))
		mock.ExpectClose()

		_, err := c.Execute(context.Background(), "postgres", "DELETE FROM t")

		var uerr *Error
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, KindExecution, uerr.Kind)
		assert.Equal(t, "PostgreSQL execution error: PostgreSQL execution failed: permission denied", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unsupported is never sent", func(t *testing.T) {
		c, mock, p := newMockClient(t)

		_, err := c.Execute(context.Background(), "postgres", "INSERT INTO t VALUES_BASE64 ('e30=')")
		assert.ErrorIs(t, err, translator.ErrUnsupported)
		assert.Zero(t, p.opened)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
