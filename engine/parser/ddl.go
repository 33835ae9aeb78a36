package parser

import (
	"strings"

	"github.com/francois95140/unisql/engine/ast"
	"github.com/francois95140/unisql/engine/lexer"
)

// objectKinds maps the object keyword of CREATE and DROP
var objectKinds = map[lexer.TokenType]ast.ObjectKind{
	lexer.TOKEN_TABLE:    ast.ObjectTable,
	lexer.TOKEN_DATABASE: ast.ObjectDatabase,
}

// parseObjectKind consumes TABLE or DATABASE
func (p *Parser) parseObjectKind() (ast.ObjectKind, error) {
	kind, ok := objectKinds[p.current().Type]
	if !ok {
		return "", p.unexpected("TABLE or DATABASE")
	}
	p.advance()
	return kind, nil
}

// parseCreate handles: CREATE TABLE t (name type, ...) | CREATE DATABASE name
func (p *Parser) parseCreate() (ast.Statement, error) {
	stmt := &ast.CreateStmt{Position: p.advance().Position}

	kind, err := p.parseObjectKind()
	if err != nil {
		return nil, err
	}
	stmt.Object = kind

	if stmt.Name, err = p.expectIdentifier(); err != nil {
		return nil, err
	}

	if kind == ast.ObjectDatabase {
		return stmt, nil
	}

	if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
		return nil, err
	}

	for {
		field, err := p.parseFieldDef()
		if err != nil {
			return nil, err
		}
		stmt.Fields = append(stmt.Fields, field)
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseFieldDef handles: name type, where type may carry a size such as
// VARCHAR(255) or NUMERIC(10, 2). The type text is kept verbatim.
func (p *Parser) parseFieldDef() (ast.FieldDef, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return ast.FieldDef{}, err
	}

	typeName, err := p.expectIdentifier()
	if err != nil {
		return ast.FieldDef{}, err
	}

	if p.check(lexer.TOKEN_LPAREN) && p.peek(1).Type == lexer.TOKEN_NUMBER {
		p.advance()
		var sizes []string
		for {
			tok, err := p.expect(lexer.TOKEN_NUMBER)
			if err != nil {
				return ast.FieldDef{}, err
			}
			sizes = append(sizes, tok.Value)
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
		if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
			return ast.FieldDef{}, err
		}
		typeName += "(" + strings.Join(sizes, ",") + ")"
	}

	return ast.FieldDef{Name: name, Type: typeName}, nil
}

// parseDrop handles: DROP TABLE name | DROP DATABASE name
func (p *Parser) parseDrop() (ast.Statement, error) {
	stmt := &ast.DropStmt{Position: p.advance().Position}

	kind, err := p.parseObjectKind()
	if err != nil {
		return nil, err
	}
	stmt.Object = kind

	if stmt.Name, err = p.expectIdentifier(); err != nil {
		return nil, err
	}
	return stmt, nil
}
