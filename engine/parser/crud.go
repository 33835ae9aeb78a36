package parser

import (
	"github.com/francois95140/unisql/engine/ast"
	"github.com/francois95140/unisql/engine/lexer"
)

// parseSelect handles: SELECT * | col [, col] FROM t [WHERE cond]
func (p *Parser) parseSelect() (ast.Statement, error) {
	stmt := &ast.SelectStmt{Position: p.advance().Position}

	if p.match(lexer.TOKEN_STAR) {
		stmt.Wildcard = true
	} else {
		columns, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		stmt.Columns = columns
	}

	if _, err := p.expect(lexer.TOKEN_FROM); err != nil {
		return nil, err
	}

	table, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	if stmt.Where, err = p.parseWhere(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseInsert handles the four INSERT forms:
//
//	INSERT INTO t VALUES (v, ...)
//	INSERT INTO t (c, ...) VALUES (v, ...)
//	INSERT INTO t VALUES_BASE64 ('...')
//	INSERT INTO t VALUES_JSON ('...' | '{...}')
func (p *Parser) parseInsert() (ast.Statement, error) {
	stmt := &ast.InsertStmt{Position: p.advance().Position}

	if _, err := p.expect(lexer.TOKEN_INTO); err != nil {
		return nil, err
	}

	table, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	formPos := p.current().Position
	switch p.current().Type {
	case lexer.TOKEN_VALUES, lexer.TOKEN_LPAREN:
		stmt.Form, err = p.parseColumnsAndValues()
	case lexer.TOKEN_VALUES_BASE64:
		p.advance()
		var payload string
		payload, err = p.parsePayload(lexer.TOKEN_STRING, lexer.TOKEN_IDENTIFIER)
		stmt.Form = &ast.Base64Bulk{Payload: payload, Position: formPos}
	case lexer.TOKEN_VALUES_JSON:
		p.advance()
		var payload string
		payload, err = p.parsePayload(lexer.TOKEN_STRING, lexer.TOKEN_JSON_BLOB, lexer.TOKEN_IDENTIFIER)
		stmt.Form = &ast.InlineJSONBulk{Payload: payload, Position: formPos}
	default:
		return nil, p.unexpected("VALUES, VALUES_BASE64, VALUES_JSON or column list")
	}

	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseColumnsAndValues handles: [(c, ...)] VALUES (v, ...)
func (p *Parser) parseColumnsAndValues() (*ast.ColumnsAndValues, error) {
	form := &ast.ColumnsAndValues{Position: p.current().Position}

	if p.match(lexer.TOKEN_LPAREN) {
		columns, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		form.Columns = columns
		if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.TOKEN_VALUES); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
		return nil, err
	}

	for {
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		form.Values = append(form.Values, value)
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return form, nil
}

// parsePayload handles: ( literal ) where literal is one of accepted
func (p *Parser) parsePayload(accepted ...lexer.TokenType) (string, error) {
	if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
		return "", err
	}

	if !p.check(accepted...) {
		return "", p.unexpected("payload literal")
	}
	payload := p.advance().Value

	if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
		return "", err
	}
	return payload, nil
}

// parseUpdate handles: UPDATE t SET f = v [, f = v] [WHERE cond]
func (p *Parser) parseUpdate() (ast.Statement, error) {
	stmt := &ast.UpdateStmt{Position: p.advance().Position}

	table, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	if _, err := p.expect(lexer.TOKEN_SET); err != nil {
		return nil, err
	}

	for {
		field, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TOKEN_EQ); err != nil {
			return nil, err
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		stmt.Assignments = append(stmt.Assignments, ast.Assignment{Field: field, Value: value})
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	if stmt.Where, err = p.parseWhere(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseDelete handles: DELETE FROM t [WHERE cond]
func (p *Parser) parseDelete() (ast.Statement, error) {
	stmt := &ast.DeleteStmt{Position: p.advance().Position}

	if _, err := p.expect(lexer.TOKEN_FROM); err != nil {
		return nil, err
	}

	table, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	if stmt.Where, err = p.parseWhere(); err != nil {
		return nil, err
	}
	return stmt, nil
}
