package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francois95140/unisql"
	"github.com/francois95140/unisql/engine/executor"
	"github.com/francois95140/unisql/internal/testutil"
	"github.com/francois95140/unisql/mapping"
)

type sqlmockProvider struct {
	db *sql.DB
}

func (p sqlmockProvider) Backend() mapping.Backend { return mapping.MySQL }

func (p sqlmockProvider) Open(context.Context) (executor.Session, error) {
	return executor.NewSQLSession(mapping.MySQL, p.db, nil), nil
}

func get(t *testing.T, s *Server, path, command string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	target := path
	if command != "" {
		target += "?" + url.Values{CommandParam: {command}}.Encode()
	}

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestServer_Translate(t *testing.T) {
	s := New(unisql.New(), testutil.NewTestLogger(t))

	rec, body := get(t, s, "/translate/postgres", "SELECT name FROM users WHERE id = 7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	result := body["result"].(map[string]any)
	assert.Equal(t, "PostgreSQL", result["backend"])
	assert.Equal(t, "SELECT", result["operation"])
	assert.Equal(t, `SELECT "name" FROM "users" WHERE "id" = $1`, result["query"])
	assert.Equal(t, []any{float64(7)}, result["params"])
}

func TestServer_TranslateGraph(t *testing.T) {
	s := New(unisql.New(), nil)

	rec, body := get(t, s, "/translate/neo4j", "DELETE FROM users WHERE id = 7")
	require.Equal(t, http.StatusOK, rec.Code)

	result := body["result"].(map[string]any)
	assert.Equal(t, "MATCH (n:users) WHERE n.id = 7 DELETE n", result["query"])
	assert.NotContains(t, result, "params")
}

func TestServer_Errors(t *testing.T) {
	s := New(unisql.New(), testutil.NewTestLogger(t))

	tests := []struct {
		name    string
		path    string
		command string
		status  int
		kind    string
	}{
		{"missing command", "/sql/postgres", "", http.StatusBadRequest, ""},
		{"unknown backend", "/sql/oracle", "SELECT * FROM t", http.StatusNotFound, "backend"},
		{"parse error", "/translate/mongo", "SELEC * FROM t", http.StatusBadRequest, "parse"},
		{"unsupported", "/translate/neo4j", "DROP TABLE t", http.StatusUnprocessableEntity, "unsupported"},
		{"no connection", "/sql/mongo", "SELECT * FROM t", http.StatusBadGateway, "connection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := get(t, s, tt.path, tt.command)

			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, body["error"])
			if tt.kind != "" {
				assert.Equal(t, tt.kind, body["kind"])
			}
		})
	}
}

func TestServer_Health(t *testing.T) {
	s := New(unisql.New(), nil)

	rec, body := get(t, s, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestServer_Execute(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	mock.ExpectQuery("SELECT `name` FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Ann"))
	mock.ExpectClose()

	client := unisql.New(unisql.WithProvider(sqlmockProvider{db: db}))
	s := New(client, testutil.NewTestLogger(t))

	rec, body := get(t, s, "/sql/mysql", "SELECT name FROM users")
	require.Equal(t, http.StatusOK, rec.Code)

	result := body["result"].(map[string]any)
	assert.Equal(t, []any{map[string]any{"name": "Ann"}}, result["records"])
	assert.Equal(t, "1 row", result["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
