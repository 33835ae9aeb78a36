package ast

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrColumnCount is returned when an explicit column list and its value list
// differ in length
var ErrColumnCount = errors.New("column count does not match value count")

// ValueKind tags a Value
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNumber
	ValueBoolean
	ValueNull
)

// String returns human-readable kind name
func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "STRING"
	case ValueNumber:
		return "NUMBER"
	case ValueBoolean:
		return "BOOLEAN"
	case ValueNull:
		return "NULL"
	}
	return "UNKNOWN"
}

// Value is a literal on the right-hand side of a comparison, an assignment
// or an insert value list. Only the field matching Kind is meaningful.
type Value struct {
	Kind ValueKind
	Str  string
	Num  int64
	Bool bool
}

// StringValue builds a String value
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// NumberValue builds a Number value
func NumberValue(n int64) Value { return Value{Kind: ValueNumber, Num: n} }

// BoolValue builds a Boolean value
func BoolValue(b bool) Value { return Value{Kind: ValueBoolean, Bool: b} }

// NullValue builds the Null value
func NullValue() Value { return Value{Kind: ValueNull} }

// Interface returns the Go value handed to drivers: string, int64, bool or nil
func (v Value) Interface() any {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueNumber:
		return v.Num
	case ValueBoolean:
		return v.Bool
	}
	return nil
}

// String renders the value the way it appeared in the command
func (v Value) String() string {
	switch v.Kind {
	case ValueString:
		return fmt.Sprintf("'%s'", v.Str)
	case ValueNumber:
		return strconv.FormatInt(v.Num, 10)
	case ValueBoolean:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	}
	return "NULL"
}

// Pair is a named value of a document or property map
type Pair struct {
	Name  string
	Value Value
}

// Pairs zips Columns with Values. Without a column list the i-th value is
// named prefix+i (field0, field1, ... or prop0, prop1, ...).
func (n *ColumnsAndValues) Pairs(prefix string) ([]Pair, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	pairs := make([]Pair, len(n.Values))
	for i, v := range n.Values {
		name := prefix + strconv.Itoa(i)
		if n.Columns != nil {
			name = n.Columns[i]
		}
		pairs[i] = Pair{Name: name, Value: v}
	}
	return pairs, nil
}

// Validate checks that an explicit column list lines up with the values
func (n *ColumnsAndValues) Validate() error {
	if n.Columns != nil && len(n.Columns) != len(n.Values) {
		return fmt.Errorf("%w: %d columns, %d values", ErrColumnCount, len(n.Columns), len(n.Values))
	}
	return nil
}
