package ast

// Node is the interface all AST nodes implement
type Node interface {
	node()
	Pos() int
}

// Statement is one parsed command. Implemented by *SelectStmt, *InsertStmt,
// *UpdateStmt, *DeleteStmt, *CreateStmt and *DropStmt only.
type Statement interface {
	Node
	statement()
	Kind() string
}

// Condition is a WHERE clause node. Implemented by *Comparison, *NullCheck
// and *Logical only.
type Condition interface {
	Node
	condition()
}

// InsertForm is the payload of an INSERT. Implemented by *ColumnsAndValues,
// *Base64Bulk and *InlineJSONBulk only.
type InsertForm interface {
	Node
	insertForm()
}

// ObjectKind is the target of CREATE and DROP
type ObjectKind string

const (
	ObjectTable    ObjectKind = "TABLE"
	ObjectDatabase ObjectKind = "DATABASE"
)

// =============================================================================
// STATEMENTS
// =============================================================================

// SelectStmt represents SELECT <columns> FROM <table> [WHERE <condition>]
type SelectStmt struct {
	Columns  []string // nil when Wildcard
	Wildcard bool
	Table    string
	Where    Condition
	Position int
}

func (n *SelectStmt) node()        {}
func (n *SelectStmt) statement()   {}
func (n *SelectStmt) Pos() int     { return n.Position }
func (n *SelectStmt) Kind() string { return "SELECT" }

// InsertStmt represents the four INSERT surface forms
type InsertStmt struct {
	Table    string
	Form     InsertForm
	Position int
}

func (n *InsertStmt) node()      {}
func (n *InsertStmt) statement() {}
func (n *InsertStmt) Pos() int   { return n.Position }

// Kind is BULK_INSERT for the base64 and inline JSON forms
func (n *InsertStmt) Kind() string {
	switch n.Form.(type) {
	case *Base64Bulk, *InlineJSONBulk:
		return "BULK_INSERT"
	}
	return "INSERT"
}

// UpdateStmt represents UPDATE t SET f=v [, f=v] [WHERE <condition>]
type UpdateStmt struct {
	Table       string
	Assignments []Assignment
	Where       Condition
	Position    int
}

func (n *UpdateStmt) node()        {}
func (n *UpdateStmt) statement()   {}
func (n *UpdateStmt) Pos() int     { return n.Position }
func (n *UpdateStmt) Kind() string { return "UPDATE" }

// DeleteStmt represents DELETE FROM t [WHERE <condition>]
type DeleteStmt struct {
	Table    string
	Where    Condition
	Position int
}

func (n *DeleteStmt) node()        {}
func (n *DeleteStmt) statement()   {}
func (n *DeleteStmt) Pos() int     { return n.Position }
func (n *DeleteStmt) Kind() string { return "DELETE" }

// CreateStmt represents CREATE TABLE t (name type, ...) or CREATE DATABASE name.
// Fields is non-empty for tables and nil for databases.
type CreateStmt struct {
	Object   ObjectKind
	Name     string
	Fields   []FieldDef
	Position int
}

func (n *CreateStmt) node()        {}
func (n *CreateStmt) statement()   {}
func (n *CreateStmt) Pos() int     { return n.Position }
func (n *CreateStmt) Kind() string { return "CREATE_" + string(n.Object) }

// DropStmt represents DROP TABLE name or DROP DATABASE name
type DropStmt struct {
	Object   ObjectKind
	Name     string
	Position int
}

func (n *DropStmt) node()        {}
func (n *DropStmt) statement()   {}
func (n *DropStmt) Pos() int     { return n.Position }
func (n *DropStmt) Kind() string { return "DROP_" + string(n.Object) }

// Assignment is one f=v pair of an UPDATE
type Assignment struct {
	Field string
	Value Value
}

// FieldDef is one "name type" pair of CREATE TABLE. Type is passed to the
// backend verbatim.
type FieldDef struct {
	Name string
	Type string
}

// =============================================================================
// INSERT FORMS
// =============================================================================

// ColumnsAndValues is the explicit VALUES form. Columns is nil when the
// statement names no columns.
type ColumnsAndValues struct {
	Columns  []string
	Values   []Value
	Position int
}

func (n *ColumnsAndValues) node()       {}
func (n *ColumnsAndValues) insertForm() {}
func (n *ColumnsAndValues) Pos() int    { return n.Position }

// Base64Bulk carries a base64-encoded JSON object or array (VALUES_BASE64)
type Base64Bulk struct {
	Payload  string
	Position int
}

func (n *Base64Bulk) node()       {}
func (n *Base64Bulk) insertForm() {}
func (n *Base64Bulk) Pos() int    { return n.Position }

// InlineJSONBulk carries a JSON object or array as text (VALUES_JSON)
type InlineJSONBulk struct {
	Payload  string
	Position int
}

func (n *InlineJSONBulk) node()       {}
func (n *InlineJSONBulk) insertForm() {}
func (n *InlineJSONBulk) Pos() int    { return n.Position }

// =============================================================================
// CONDITIONS
// =============================================================================

// CompareOp is a comparison operator of the command language
type CompareOp string

const (
	OpEq  CompareOp = "="
	OpNeq CompareOp = "<>"
	OpLt  CompareOp = "<"
	OpGt  CompareOp = ">"
	OpLte CompareOp = "<="
	OpGte CompareOp = ">="
)

// LogicOp joins two conditions
type LogicOp string

const (
	OpAnd LogicOp = "AND"
	OpOr  LogicOp = "OR"
)

// Comparison represents field op value
type Comparison struct {
	Field    string
	Operator CompareOp
	Value    Value
	Position int
}

func (n *Comparison) node()      {}
func (n *Comparison) condition() {}
func (n *Comparison) Pos() int   { return n.Position }

// NullCheck represents field IS NULL, or field IS NOT NULL when Negated
type NullCheck struct {
	Field    string
	Negated  bool
	Position int
}

func (n *NullCheck) node()      {}
func (n *NullCheck) condition() {}
func (n *NullCheck) Pos() int   { return n.Position }

// Logical joins exactly two conditions with AND or OR
type Logical struct {
	Operator LogicOp
	Left     Condition
	Right    Condition
	Position int
}

func (n *Logical) node()      {}
func (n *Logical) condition() {}
func (n *Logical) Pos() int   { return n.Position }
