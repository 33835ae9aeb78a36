package preprocess

import "github.com/francois95140/unisql/engine/ast"

// Restore puts extracted payloads back into a parsed statement. Any bulk
// payload, insert value, assignment value or comparison value equal to a
// recorded placeholder is replaced by its payload text. Unknown placeholders
// are left as they are.
func Restore(stmt ast.Statement, payloads Payloads) {
	if len(payloads) == 0 || stmt == nil {
		return
	}

	switch s := stmt.(type) {
	case *ast.SelectStmt:
		restoreCondition(s.Where, payloads)
	case *ast.InsertStmt:
		restoreInsert(s.Form, payloads)
	case *ast.UpdateStmt:
		for i := range s.Assignments {
			s.Assignments[i].Value = restoreValue(s.Assignments[i].Value, payloads)
		}
		restoreCondition(s.Where, payloads)
	case *ast.DeleteStmt:
		restoreCondition(s.Where, payloads)
	}
}

func restoreInsert(form ast.InsertForm, payloads Payloads) {
	switch f := form.(type) {
	case *ast.ColumnsAndValues:
		for i := range f.Values {
			f.Values[i] = restoreValue(f.Values[i], payloads)
		}
	case *ast.Base64Bulk:
		f.Payload = restoreString(f.Payload, payloads)
	case *ast.InlineJSONBulk:
		f.Payload = restoreString(f.Payload, payloads)
	}
}

func restoreCondition(cond ast.Condition, payloads Payloads) {
	switch c := cond.(type) {
	case *ast.Comparison:
		c.Value = restoreValue(c.Value, payloads)
	case *ast.Logical:
		restoreCondition(c.Left, payloads)
		restoreCondition(c.Right, payloads)
	}
}

func restoreValue(v ast.Value, payloads Payloads) ast.Value {
	if v.Kind != ast.ValueString {
		return v
	}
	v.Str = restoreString(v.Str, payloads)
	return v
}

func restoreString(s string, payloads Payloads) string {
	if payload, ok := payloads[s]; ok {
		return payload
	}
	return s
}
