package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/francois95140/unisql/engine/ast"
	"github.com/francois95140/unisql/engine/lexer"
	"github.com/francois95140/unisql/mapping"
)

// ErrEmptyCommand is returned for input without any token
var ErrEmptyCommand = errors.New("empty command")

// Parser implements a recursive descent parser for the command language
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// Parse is the package-level entry point. Lexer diagnostics are dropped;
// callers that want them tokenize first and use New.
func Parse(input string) (ast.Statement, error) {
	tokens, _ := lexer.Tokenize(input)
	return New(tokens).Parse()
}

// New creates a parser over an EOF-terminated token slice
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens: tokens,
		pos:    0,
	}
}

// statementParsers maps each command keyword to its production
var statementParsers = map[lexer.TokenType]func(*Parser) (ast.Statement, error){
	lexer.TOKEN_SELECT: (*Parser).parseSelect,
	lexer.TOKEN_INSERT: (*Parser).parseInsert,
	lexer.TOKEN_UPDATE: (*Parser).parseUpdate,
	lexer.TOKEN_DELETE: (*Parser).parseDelete,
	lexer.TOKEN_CREATE: (*Parser).parseCreate,
	lexer.TOKEN_DROP:   (*Parser).parseDrop,
}

// Parse parses exactly one statement. Leftover tokens are an error.
func (p *Parser) Parse() (ast.Statement, error) {
	if p.isAtEnd() {
		return nil, &lexer.ParseError{Message: ErrEmptyCommand.Error(), Line: 1, Column: 1}
	}

	tok := p.current()

	// Validate against mapping
	if _, exists := mapping.OperationGroups[tok.Type.String()]; !exists {
		return nil, p.errorWithSuggestion()
	}

	stmt, err := statementParsers[tok.Type](p)
	if err != nil {
		return nil, err
	}

	if !p.isAtEnd() {
		return nil, p.error(fmt.Sprintf("unexpected '%s' after %s statement", p.current().Value, stmt.Kind()))
	}

	return stmt, nil
}

// =============================================================================
// TOKEN NAVIGATION
// =============================================================================

// current returns current token without advancing
func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	return p.tokens[p.pos]
}

// advance moves to next token, returns previous
func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// peek looks ahead without advancing
func (p *Parser) peek(offset int) lexer.Token {
	pos := p.pos + offset
	if pos < 0 || pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	return p.tokens[pos]
}

// isAtEnd checks if all tokens consumed
func (p *Parser) isAtEnd() bool {
	return p.pos >= len(p.tokens) || p.current().Type == lexer.TOKEN_EOF
}

// check reports whether the current token has one of the given types
func (p *Parser) check(types ...lexer.TokenType) bool {
	cur := p.current().Type
	for _, t := range types {
		if cur == t {
			return true
		}
	}
	return false
}

// match checks current token and advances if matched
func (p *Parser) match(types ...lexer.TokenType) bool {
	if p.check(types...) {
		p.advance()
		return true
	}
	return false
}

// expect consumes token if it matches, otherwise error
func (p *Parser) expect(tokenType lexer.TokenType) (lexer.Token, error) {
	if !p.check(tokenType) {
		return lexer.Token{}, p.unexpected(tokenType.String())
	}
	return p.advance(), nil
}

// expectIdentifier consumes and returns identifier
func (p *Parser) expectIdentifier() (string, error) {
	tok, err := p.expect(lexer.TOKEN_IDENTIFIER)
	if err != nil {
		return "", err
	}
	return tok.Value, nil
}

// =============================================================================
// SHARED PRODUCTIONS
// =============================================================================

// parseIdentifierList handles: ident [, ident ...]
func (p *Parser) parseIdentifierList() ([]string, error) {
	var names []string
	for {
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if !p.match(lexer.TOKEN_COMMA) {
			return names, nil
		}
	}
}

// parseValue handles: STRING | NUMBER | TRUE | FALSE | NULL. A quoted
// literal in braces is a plain string here.
func (p *Parser) parseValue() (ast.Value, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.TOKEN_STRING, lexer.TOKEN_JSON_BLOB:
		p.advance()
		return ast.StringValue(tok.Value), nil
	case lexer.TOKEN_NUMBER:
		n, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return ast.Value{}, p.error(fmt.Sprintf("invalid number '%s'", tok.Value))
		}
		p.advance()
		return ast.NumberValue(n), nil
	case lexer.TOKEN_BOOLEAN:
		p.advance()
		return ast.BoolValue(strings.EqualFold(tok.Value, "TRUE")), nil
	case lexer.TOKEN_NULL:
		p.advance()
		return ast.NullValue(), nil
	}
	return ast.Value{}, p.unexpected("value")
}

// =============================================================================
// ERROR HANDLING
// =============================================================================

// error creates parse error at current position
func (p *Parser) error(message string) error {
	return lexer.NewParseError(p.current(), message)
}

// unexpected reports what was expected and what was found
func (p *Parser) unexpected(expected string) error {
	tok := p.current()
	if tok.Type == lexer.TOKEN_EOF {
		return p.error(fmt.Sprintf("expected %s, got end of input", expected))
	}
	return p.error(fmt.Sprintf("expected %s, got '%s'", expected, tok.Value))
}

// errorWithSuggestion adds "did you mean" suggestion
func (p *Parser) errorWithSuggestion() error {
	return lexer.NewUnknownTokenError(p.current())
}
