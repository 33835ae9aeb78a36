package relational

import (
	"strconv"
	"strings"

	"github.com/francois95140/unisql/mapping"
)

// Dialect holds the spelling differences between SQL backends
type Dialect struct {
	Backend     mapping.Backend
	quote       string
	placeholder func(n int) string
}

// PostgreSQL quotes with double quotes and numbers placeholders $1..$n
var PostgreSQL = Dialect{
	Backend:     mapping.PostgreSQL,
	quote:       `"`,
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
}

// MySQL quotes with backticks and uses ? placeholders
var MySQL = Dialect{
	Backend:     mapping.MySQL,
	quote:       "`",
	placeholder: func(int) string { return "?" },
}

// DialectFor returns the dialect of a relational backend
func DialectFor(backend mapping.Backend) (Dialect, bool) {
	switch backend {
	case mapping.PostgreSQL:
		return PostgreSQL, true
	case mapping.MySQL:
		return MySQL, true
	}
	return Dialect{}, false
}

// QuoteIdentifier wraps name in the dialect's quotes, doubling embedded ones
func (d Dialect) QuoteIdentifier(name string) string {
	return d.quote + strings.ReplaceAll(name, d.quote, d.quote+d.quote) + d.quote
}

// Placeholder returns the marker for the n-th parameter (1-based)
func (d Dialect) Placeholder(n int) string {
	return d.placeholder(n)
}

// Builder renders SQL fragments and collects parameters in emission order
type Builder struct {
	dialect Dialect
	params  []any
}

// NewBuilder creates a builder for one statement
func NewBuilder(d Dialect) *Builder {
	return &Builder{dialect: d}
}

// Quote quotes an identifier
func (b *Builder) Quote(name string) string {
	return b.dialect.QuoteIdentifier(name)
}

// QuoteList quotes and comma-joins identifiers
func (b *Builder) QuoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = b.Quote(name)
	}
	return strings.Join(quoted, ", ")
}

// Bind appends a parameter and returns its placeholder
func (b *Builder) Bind(value any) string {
	b.params = append(b.params, value)
	return b.dialect.Placeholder(len(b.params))
}

// Params returns the parameters bound so far. Never nil.
func (b *Builder) Params() []any {
	if b.params == nil {
		return []any{}
	}
	return b.params
}

// operator returns the dialect spelling of a language operator
func (b *Builder) operator(op string) string {
	if native, ok := mapping.TranslateOperator(b.dialect.Backend, op); ok {
		return native
	}
	return op
}
