package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/francois95140/unisql/engine/parser"
	"github.com/francois95140/unisql/engine/translator"
	"github.com/francois95140/unisql/mapping"
)

var generated = []string{
	"SELECT * FROM users",
	"SELECT name, age FROM users WHERE (age > 18 OR name = 'x') AND email IS NOT NULL",
	"INSERT INTO users (id, name) VALUES (1, 'John')",
	"UPDATE users SET name = 'Ann', active = TRUE WHERE id = 7",
	"DELETE FROM users WHERE id <> 3",
	"CREATE TABLE users (id INT, name VARCHAR(100))",
	"DROP TABLE users",
}

func TestValidate_GeneratedSQL(t *testing.T) {
	for _, backend := range []mapping.Backend{mapping.PostgreSQL, mapping.MySQL} {
		for _, input := range generated {
			t.Run(backend.String()+"/"+input, func(t *testing.T) {
				stmt, err := parser.Parse(input)
				require.NoError(t, err)
				q, err := translator.Translate(stmt, backend)
				require.NoError(t, err)

				assert.NoError(t, Validate(q))
			})
		}
	}
}

func TestValidateSQL_Invalid(t *testing.T) {
	tests := []struct {
		backend mapping.Backend
		query   string
	}{
		{mapping.PostgreSQL, "SELEC * FROM t"},
		{mapping.PostgreSQL, `SELECT * FROM "t" WHERE`},
		{mapping.MySQL, "SELECT * FROM"},
		{mapping.MySQL, "UPDATE `t` SET"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Error(t, ValidateSQL(tt.query, tt.backend))
		})
	}

	assert.ErrorIs(t, ValidateSQL("SELECT 1", mapping.MongoDB), mapping.ErrUnknownBackend)
}

func TestValidate_WrapsFailures(t *testing.T) {
	q := &translator.RelationalQuery{Dialect: mapping.PostgreSQL, SQL: "SELECT FROM WHERE"}

	err := Validate(q)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, mapping.PostgreSQL, verr.Backend)
	assert.Contains(t, err.Error(), "generated PostgreSQL query is invalid")
}

func TestValidateMongoDB(t *testing.T) {
	tests := []struct {
		name string
		q    *translator.DocumentQuery
		want error
	}{
		{
			name: "find",
			q:    &translator.DocumentQuery{Op: mapping.DocFind, Collection: "users", Filter: bson.D{}},
		},
		{
			name: "drop database",
			q:    &translator.DocumentQuery{Op: mapping.DocDropDatabase, Database: "shop"},
		},
		{
			name: "missing collection",
			q:    &translator.DocumentQuery{Op: mapping.DocFind, Filter: bson.D{}},
			want: ErrMissingCollection,
		},
		{
			name: "missing database",
			q:    &translator.DocumentQuery{Op: mapping.DocCreateDatabase},
			want: ErrMissingDatabase,
		},
		{
			name: "operator key in document",
			q: &translator.DocumentQuery{Op: mapping.DocInsertOne, Collection: "t", Documents: []bson.D{
				{{Key: "$where", Value: "1"}},
			}},
			want: ErrOperatorField,
		},
		{
			name: "no documents",
			q:    &translator.DocumentQuery{Op: mapping.DocInsertMany, Collection: "t"},
			want: ErrNoDocuments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMongoDB(tt.q)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidate_GraphAlwaysPasses(t *testing.T) {
	assert.NoError(t, Validate(&translator.GraphQuery{Cypher: "MATCH (n:t) RETURN n"}))
}
