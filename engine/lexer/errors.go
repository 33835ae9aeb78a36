package lexer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/francois95140/unisql/mapping"
)

// ParseError represents an error with position info
type ParseError struct {
	Message  string
	Position int
	Line     int
	Column   int
	Token    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// NewParseError creates a new parse error
func NewParseError(token Token, message string) *ParseError {
	return &ParseError{
		Message:  message,
		Position: token.Position,
		Line:     token.Line,
		Column:   token.Column,
		Token:    token.Value,
	}
}

// NewUnknownTokenError creates error with suggestion. A reserved word gets no
// suggestion since it is spelled right but misplaced.
func NewUnknownTokenError(token Token) *ParseError {
	if token.IsKeyword() {
		return NewParseError(token, fmt.Sprintf("'%s' cannot start a command", token.Value))
	}
	suggestion := SuggestSimilar(token.Value)
	msg := fmt.Sprintf("unknown command '%s'", token.Value)
	if suggestion != "" {
		msg += fmt.Sprintf(". Did you mean '%s'?", suggestion)
	}
	return NewParseError(token, msg)
}

// LexError is a non-fatal diagnostic for a character that starts no token
type LexError struct {
	Char     rune
	Message  string
	Position int
	Line     int
	Column   int
}

func (e LexError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// SuggestSimilar finds the closest command keyword within two edits
func SuggestSimilar(unknown string) string {
	unknown = strings.ToUpper(unknown)

	var bestMatch string
	bestDistance := 999
	maxDistance := 2

	for _, op := range commandKeywords() {
		dist := levenshtein(unknown, op)
		if dist <= maxDistance && dist < bestDistance {
			bestDistance = dist
			bestMatch = op
		}
	}

	return bestMatch
}

func commandKeywords() []string {
	ops := make([]string, 0, len(mapping.OperationGroups))
	for op := range mapping.OperationGroups {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// levenshtein calculates edit distance between two strings
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	matrix := make([][]int, len(ra)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(rb)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(ra)][len(rb)]
}
