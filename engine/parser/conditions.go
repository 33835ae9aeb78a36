package parser

import (
	"github.com/francois95140/unisql/engine/ast"
	"github.com/francois95140/unisql/engine/lexer"
)

// comparisonOperators maps operator tokens to AST operators
var comparisonOperators = map[lexer.TokenType]ast.CompareOp{
	lexer.TOKEN_EQ:  ast.OpEq,
	lexer.TOKEN_NEQ: ast.OpNeq,
	lexer.TOKEN_LT:  ast.OpLt,
	lexer.TOKEN_GT:  ast.OpGt,
	lexer.TOKEN_LTE: ast.OpLte,
	lexer.TOKEN_GTE: ast.OpGte,
}

// parseWhere handles an optional trailing WHERE clause
func (p *Parser) parseWhere() (ast.Condition, error) {
	if !p.match(lexer.TOKEN_WHERE) {
		return nil, nil
	}
	return p.parseCondition()
}

// parseCondition is the entry point of the condition grammar.
// OR binds loosest, AND tighter, both left-associative.
func (p *Parser) parseCondition() (ast.Condition, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Condition, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.check(lexer.TOKEN_OR) {
		pos := p.advance().Position
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{Operator: ast.OpOr, Left: left, Right: right, Position: pos}
	}

	return left, nil
}

func (p *Parser) parseAnd() (ast.Condition, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.check(lexer.TOKEN_AND) {
		pos := p.advance().Position
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{Operator: ast.OpAnd, Left: left, Right: right, Position: pos}
	}

	return left, nil
}

// parsePrimary handles a parenthesized expression or a single predicate
func (p *Parser) parsePrimary() (ast.Condition, error) {
	if p.match(lexer.TOKEN_LPAREN) {
		cond, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
			return nil, err
		}
		return cond, nil
	}
	return p.parsePredicate()
}

// parsePredicate handles: field op value | field IS [NOT] NULL
func (p *Parser) parsePredicate() (ast.Condition, error) {
	pos := p.current().Position
	field, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	if p.match(lexer.TOKEN_IS) {
		negated := p.match(lexer.TOKEN_NOT)
		if _, err := p.expect(lexer.TOKEN_NULL); err != nil {
			return nil, err
		}
		return &ast.NullCheck{Field: field, Negated: negated, Position: pos}, nil
	}

	op, ok := comparisonOperators[p.current().Type]
	if !ok {
		return nil, p.unexpected("comparison operator")
	}
	p.advance()

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return &ast.Comparison{Field: field, Operator: op, Value: value, Position: pos}, nil
}
