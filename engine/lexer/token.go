package lexer

import "strings"

// TokenType represents the category of a token
type TokenType int

const (
	TOKEN_UNKNOWN TokenType = iota
	TOKEN_EOF               // End of input

	// Reserved words
	TOKEN_SELECT
	TOKEN_FROM
	TOKEN_WHERE
	TOKEN_AND
	TOKEN_OR
	TOKEN_IS
	TOKEN_NOT
	TOKEN_NULL
	TOKEN_INSERT
	TOKEN_INTO
	TOKEN_VALUES
	TOKEN_VALUES_BASE64
	TOKEN_VALUES_JSON
	TOKEN_UPDATE
	TOKEN_SET
	TOKEN_DELETE
	TOKEN_CREATE
	TOKEN_DROP
	TOKEN_TABLE
	TOKEN_DATABASE

	// Literals
	TOKEN_IDENTIFIER // users, age, __unisql_payload_...
	TOKEN_STRING     // 'John', "hello"
	TOKEN_JSON_BLOB  // '{"a": 1}'
	TOKEN_NUMBER     // 25, -3
	TOKEN_BOOLEAN    // TRUE, FALSE

	// Punctuation
	TOKEN_COMMA     // ,
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_EQ        // =
	TOKEN_NEQ       // <>
	TOKEN_LT        // <
	TOKEN_GT        // >
	TOKEN_LTE       // <=
	TOKEN_GTE       // >=
	TOKEN_STAR      // *
	TOKEN_COLON     // :
	TOKEN_LBRACKET  // [
	TOKEN_RBRACKET  // ]
	TOKEN_LBRACE    // {
	TOKEN_RBRACE    // }
	TOKEN_AMPERSAND // &
	TOKEN_DOT       // .
	TOKEN_BACKSLASH // \
)

var tokenNames = map[TokenType]string{
	TOKEN_UNKNOWN:       "UNKNOWN",
	TOKEN_EOF:           "EOF",
	TOKEN_SELECT:        "SELECT",
	TOKEN_FROM:          "FROM",
	TOKEN_WHERE:         "WHERE",
	TOKEN_AND:           "AND",
	TOKEN_OR:            "OR",
	TOKEN_IS:            "IS",
	TOKEN_NOT:           "NOT",
	TOKEN_NULL:          "NULL",
	TOKEN_INSERT:        "INSERT",
	TOKEN_INTO:          "INTO",
	TOKEN_VALUES:        "VALUES",
	TOKEN_VALUES_BASE64: "VALUES_BASE64",
	TOKEN_VALUES_JSON:   "VALUES_JSON",
	TOKEN_UPDATE:        "UPDATE",
	TOKEN_SET:           "SET",
	TOKEN_DELETE:        "DELETE",
	TOKEN_CREATE:        "CREATE",
	TOKEN_DROP:          "DROP",
	TOKEN_TABLE:         "TABLE",
	TOKEN_DATABASE:      "DATABASE",
	TOKEN_IDENTIFIER:    "IDENTIFIER",
	TOKEN_STRING:        "STRING",
	TOKEN_JSON_BLOB:     "JSON_BLOB",
	TOKEN_NUMBER:        "NUMBER",
	TOKEN_BOOLEAN:       "BOOLEAN",
	TOKEN_COMMA:         "COMMA",
	TOKEN_LPAREN:        "LPAREN",
	TOKEN_RPAREN:        "RPAREN",
	TOKEN_EQ:            "EQ",
	TOKEN_NEQ:           "NEQ",
	TOKEN_LT:            "LT",
	TOKEN_GT:            "GT",
	TOKEN_LTE:           "LTE",
	TOKEN_GTE:           "GTE",
	TOKEN_STAR:          "STAR",
	TOKEN_COLON:         "COLON",
	TOKEN_LBRACKET:      "LBRACKET",
	TOKEN_RBRACKET:      "RBRACKET",
	TOKEN_LBRACE:        "LBRACE",
	TOKEN_RBRACE:        "RBRACE",
	TOKEN_AMPERSAND:     "AMPERSAND",
	TOKEN_DOT:           "DOT",
	TOKEN_BACKSLASH:     "BACKSLASH",
}

// String returns human-readable token type name
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Keywords maps upper-cased reserved words to their token type.
// INCERT is kept as an alias of INSERT.
var Keywords = map[string]TokenType{
	"SELECT":        TOKEN_SELECT,
	"FROM":          TOKEN_FROM,
	"WHERE":         TOKEN_WHERE,
	"AND":           TOKEN_AND,
	"OR":            TOKEN_OR,
	"IS":            TOKEN_IS,
	"NOT":           TOKEN_NOT,
	"NULL":          TOKEN_NULL,
	"INSERT":        TOKEN_INSERT,
	"INCERT":        TOKEN_INSERT,
	"INTO":          TOKEN_INTO,
	"VALUES":        TOKEN_VALUES,
	"VALUES_BASE64": TOKEN_VALUES_BASE64,
	"VALUES_JSON":   TOKEN_VALUES_JSON,
	"UPDATE":        TOKEN_UPDATE,
	"SET":           TOKEN_SET,
	"DELETE":        TOKEN_DELETE,
	"CREATE":        TOKEN_CREATE,
	"DROP":          TOKEN_DROP,
	"TABLE":         TOKEN_TABLE,
	"DATABASE":      TOKEN_DATABASE,
	"TRUE":          TOKEN_BOOLEAN,
	"FALSE":         TOKEN_BOOLEAN,
}

// LookupWord classifies a word as a keyword or an identifier
func LookupWord(word string) TokenType {
	if t, ok := Keywords[strings.ToUpper(word)]; ok {
		return t
	}
	return TOKEN_IDENTIFIER
}

// Token represents a single token with position info
type Token struct {
	Type     TokenType
	Value    string // Original text; quotes stripped for STRING and JSON_BLOB
	Position int    // Byte offset in input
	Line     int    // Line number (1-indexed)
	Column   int    // Column number (1-indexed, in runes)
}

// IsKeyword reports whether the token is a reserved word
func (t Token) IsKeyword() bool {
	return t.Type >= TOKEN_SELECT && t.Type <= TOKEN_DATABASE
}
