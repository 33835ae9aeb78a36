package mapping

// OperatorMap - Runtime mapping for translators
// Usage: OperatorMap[MongoDB]["="] returns "$eq"
var OperatorMap = map[Backend]map[string]string{
	PostgreSQL: {
		"=":  "=",
		"<>": "<>",
		"<":  "<",
		">":  ">",
		"<=": "<=",
		">=": ">=",

		"IS_NULL":     "IS NULL",
		"IS_NOT_NULL": "IS NOT NULL",

		"AND": "AND",
		"OR":  "OR",
	},
	MySQL: {
		"=":  "=",
		"<>": "<>",
		"<":  "<",
		">":  ">",
		"<=": "<=",
		">=": ">=",

		"IS_NULL":     "IS NULL",
		"IS_NOT_NULL": "IS NOT NULL",

		"AND": "AND",
		"OR":  "OR",
	},
	MongoDB: {
		"=":  "$eq",
		"<>": "$ne",
		"<":  "$lt",
		">":  "$gt",
		"<=": "$lte",
		">=": "$gte",

		"AND": "$and",
		"OR":  "$or",
	},
	Neo4j: {
		"=":  "=",
		"<>": "<>",
		"<":  "<",
		">":  ">",
		"<=": "<=",
		">=": ">=",

		"IS_NULL":     "IS NULL",
		"IS_NOT_NULL": "IS NOT NULL",
	},
}

// ComparisonOperators lists the comparison operators of the command language
var ComparisonOperators = []string{"=", "<>", "<", ">", "<=", ">="}

// TranslateOperator returns the native spelling of op for backend
func TranslateOperator(backend Backend, op string) (string, bool) {
	ops, ok := OperatorMap[backend]
	if !ok {
		return "", false
	}
	native, ok := ops[op]
	return native, ok
}
