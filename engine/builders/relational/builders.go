package relational

import (
	"fmt"
	"strings"

	"github.com/francois95140/unisql/engine/ast"
)

// ============================================================================
// CRUD OPERATIONS - SQL BUILDERS
// ============================================================================

// BuildWhereClause renders a condition tree. Comparisons bind their value,
// null checks bind nothing and logical nodes are parenthesized. Parameters
// are bound in left-to-right order.
func BuildWhereClause(b *Builder, cond ast.Condition) string {
	switch c := cond.(type) {
	case *ast.Comparison:
		return fmt.Sprintf("%s %s %s", b.Quote(c.Field), b.operator(string(c.Operator)), b.Bind(c.Value.Interface()))
	case *ast.NullCheck:
		op := "IS_NULL"
		if c.Negated {
			op = "IS_NOT_NULL"
		}
		return fmt.Sprintf("%s %s", b.Quote(c.Field), b.operator(op))
	case *ast.Logical:
		left := BuildWhereClause(b, c.Left)
		right := BuildWhereClause(b, c.Right)
		return fmt.Sprintf("(%s %s %s)", left, b.operator(string(c.Operator)), right)
	}
	return ""
}

// whereSuffix renders " WHERE ..." or nothing
func whereSuffix(b *Builder, cond ast.Condition) string {
	if cond == nil {
		return ""
	}
	return " WHERE " + BuildWhereClause(b, cond)
}

// BuildSelectSQL handles: SELECT "a", "b" FROM "t" [WHERE ...]
func BuildSelectSQL(b *Builder, stmt *ast.SelectStmt) string {
	columns := "*"
	if !stmt.Wildcard {
		columns = b.QuoteList(stmt.Columns)
	}
	return fmt.Sprintf("SELECT %s FROM %s", columns, b.Quote(stmt.Table)) + whereSuffix(b, stmt.Where)
}

// BuildInsertSQL handles: INSERT INTO "t" [("a", "b")] VALUES ($1, $2)
func BuildInsertSQL(b *Builder, table string, form *ast.ColumnsAndValues) string {
	placeholders := make([]string, len(form.Values))
	for i, v := range form.Values {
		placeholders[i] = b.Bind(v.Interface())
	}

	sql := "INSERT INTO " + b.Quote(table)
	if form.Columns != nil {
		sql += " (" + b.QuoteList(form.Columns) + ")"
	}
	return sql + " VALUES (" + strings.Join(placeholders, ", ") + ")"
}

// BuildUpdateSQL handles: UPDATE "t" SET "a" = $1 [, ...] [WHERE ...].
// Assignment parameters come before WHERE parameters.
func BuildUpdateSQL(b *Builder, stmt *ast.UpdateStmt) string {
	setParts := make([]string, len(stmt.Assignments))
	for i, a := range stmt.Assignments {
		setParts[i] = fmt.Sprintf("%s = %s", b.Quote(a.Field), b.Bind(a.Value.Interface()))
	}
	return fmt.Sprintf("UPDATE %s SET %s", b.Quote(stmt.Table), strings.Join(setParts, ", ")) + whereSuffix(b, stmt.Where)
}

// BuildDeleteSQL handles: DELETE FROM "t" [WHERE ...]
func BuildDeleteSQL(b *Builder, stmt *ast.DeleteStmt) string {
	return "DELETE FROM " + b.Quote(stmt.Table) + whereSuffix(b, stmt.Where)
}

// ============================================================================
// DDL OPERATIONS - SQL BUILDERS
// ============================================================================

// BuildCreateTableSQL handles: CREATE TABLE "t" ("a" INT, ...). Types are
// emitted verbatim.
func BuildCreateTableSQL(b *Builder, name string, fields []ast.FieldDef) string {
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = b.Quote(f.Name) + " " + f.Type
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", b.Quote(name), strings.Join(columns, ", "))
}

// BuildDropTableSQL constructs SQL for DROP TABLE
func BuildDropTableSQL(b *Builder, name string) string {
	return "DROP TABLE " + b.Quote(name)
}

// BuildCreateDatabaseSQL constructs SQL for CREATE DATABASE
func BuildCreateDatabaseSQL(b *Builder, name string) string {
	return "CREATE DATABASE " + b.Quote(name)
}

// BuildDropDatabaseSQL constructs SQL for DROP DATABASE
func BuildDropDatabaseSQL(b *Builder, name string) string {
	return "DROP DATABASE " + b.Quote(name)
}
