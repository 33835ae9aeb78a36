package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/francois95140/unisql/engine/ast"
	"github.com/francois95140/unisql/mapping"
)

// IDField is the primary key every document carries
const IDField = "_id"

// ============================================================================
// FILTER BUILDING
// ============================================================================

// BuildMongoFilter builds an ordered BSON filter from a condition tree.
// A nil condition matches every document.
func BuildMongoFilter(cond ast.Condition) bson.D {
	if cond == nil {
		return bson.D{}
	}
	return buildFilterRecursive(cond)
}

func buildFilterRecursive(cond ast.Condition) bson.D {
	switch c := cond.(type) {
	case *ast.Comparison:
		return buildSingleConditionFilter(c)
	case *ast.NullCheck:
		if c.Negated {
			return bson.D{{Key: c.Field, Value: bson.D{{Key: "$ne", Value: nil}}}}
		}
		return bson.D{{Key: c.Field, Value: nil}}
	case *ast.Logical:
		op := mapping.OperatorMap[mapping.MongoDB][string(c.Operator)]
		return bson.D{{Key: op, Value: bson.A{
			buildFilterRecursive(c.Left),
			buildFilterRecursive(c.Right),
		}}}
	}
	return bson.D{}
}

// buildSingleConditionFilter renders {field: {$op: value}}
func buildSingleConditionFilter(c *ast.Comparison) bson.D {
	op := mapping.OperatorMap[mapping.MongoDB][string(c.Operator)]
	return bson.D{{Key: c.Field, Value: bson.D{{Key: op, Value: c.Value.Interface()}}}}
}

// ============================================================================
// PROJECTION / DOCUMENT BUILDING
// ============================================================================

// BuildProjection includes each requested field and excludes _id unless it
// was requested. A nil column list means every field.
func BuildProjection(columns []string) bson.D {
	if columns == nil {
		return nil
	}

	projection := bson.D{}
	wantsID := false
	for _, col := range columns {
		if col == IDField {
			wantsID = true
		}
		projection = append(projection, bson.E{Key: col, Value: 1})
	}
	if !wantsID {
		projection = append(projection, bson.E{Key: IDField, Value: 0})
	}
	return projection
}

// BuildDocument turns named values into an ordered document
func BuildDocument(pairs []ast.Pair) bson.D {
	doc := make(bson.D, 0, len(pairs))
	for _, p := range pairs {
		doc = append(doc, bson.E{Key: p.Name, Value: p.Value.Interface()})
	}
	return doc
}

// BuildSetUpdate renders {$set: {f: v, ...}} in assignment order
func BuildSetUpdate(assignments []ast.Assignment) bson.D {
	set := make(bson.D, 0, len(assignments))
	for _, a := range assignments {
		set = append(set, bson.E{Key: a.Field, Value: a.Value.Interface()})
	}
	return bson.D{{Key: "$set", Value: set}}
}
