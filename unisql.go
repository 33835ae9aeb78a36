// Package unisql translates a small SQL-like command language into native
// queries for PostgreSQL, MySQL, MongoDB and Neo4j, and runs them.
package unisql

import (
	"log/slog"

	"github.com/francois95140/unisql/engine/ast"
	"github.com/francois95140/unisql/engine/lexer"
	"github.com/francois95140/unisql/engine/parser"
	"github.com/francois95140/unisql/engine/preprocess"
)

// Parse runs the front half of the pipeline: payload extraction, lexing,
// parsing and payload restoration. Lexer diagnostics are discarded.
func Parse(raw string) (ast.Statement, error) {
	return parse(raw, slog.New(slog.DiscardHandler))
}

func parse(raw string, logger *slog.Logger) (ast.Statement, error) {
	pre := preprocess.Preprocess(raw)
	if pre.Corrected {
		logger.Debug("corrected misspelled keyword", slog.String("command", pre.Text))
	}

	tokens, lexErrs := lexer.Tokenize(pre.Text)
	for _, e := range lexErrs {
		logger.Debug("skipped character",
			slog.String("char", string(e.Char)),
			slog.Int("line", e.Line),
			slog.Int("column", e.Column))
	}

	stmt, err := parser.New(tokens).Parse()
	if err != nil {
		return nil, err
	}

	preprocess.Restore(stmt, pre.Payloads)
	return stmt, nil
}
