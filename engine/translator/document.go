package translator

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	mongobuilders "github.com/francois95140/unisql/engine/builders/mongodb"
	"github.com/francois95140/unisql/engine/ast"
	"github.com/francois95140/unisql/mapping"
)

// SyntheticFieldPrefix names values inserted without a column list
const SyntheticFieldPrefix = "field"

// DocumentQuery is a MongoDB operation. Only the parts the operation needs
// are set. Database is set for database-level operations only.
type DocumentQuery struct {
	Op         string
	Database   string
	Collection string
	Filter     bson.D
	Projection bson.D
	Update     bson.D
	Documents  []bson.D
}

func (q *DocumentQuery) query()                   {}
func (q *DocumentQuery) Backend() mapping.Backend { return mapping.MongoDB }
func (q *DocumentQuery) Operation() string        { return q.Op }

// String renders the query in mongo shell form, e.g.
// db.users.find({"age":{"$gte":18}}, {"name":1,"_id":0})
func (q *DocumentQuery) String() string {
	var args []string
	switch q.Op {
	case mapping.DocFind:
		args = append(args, extJSON(q.Filter))
		if q.Projection != nil {
			args = append(args, extJSON(q.Projection))
		}
	case mapping.DocInsertOne:
		args = append(args, extJSON(q.Documents[0]))
	case mapping.DocInsertMany:
		docs := make([]string, len(q.Documents))
		for i, d := range q.Documents {
			docs[i] = extJSON(d)
		}
		args = append(args, "["+strings.Join(docs, ", ")+"]")
	case mapping.DocUpdateMany:
		args = append(args, extJSON(q.Filter), extJSON(q.Update))
	case mapping.DocDeleteMany:
		args = append(args, extJSON(q.Filter))
	case mapping.DocCreateDatabase, mapping.DocDropDatabase:
		return fmt.Sprintf("%s(%q)", q.Op, q.Database)
	case mapping.DocCreateCollection:
		return fmt.Sprintf("db.createCollection(%q)", q.Collection)
	case mapping.DocDropCollection:
		return fmt.Sprintf("db.%s.drop()", q.Collection)
	}
	return fmt.Sprintf("db.%s.%s(%s)", q.Collection, q.Op, strings.Join(args, ", "))
}

func extJSON(doc bson.D) string {
	if doc == nil {
		doc = bson.D{}
	}
	out, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return fmt.Sprintf("%v", doc)
	}
	return string(out)
}

// TranslateDocument turns a statement into a MongoDB operation
func TranslateDocument(stmt ast.Statement) (*DocumentQuery, error) {
	op, err := checkSupported(mapping.MongoDB, stmt)
	if err != nil {
		return nil, err
	}

	q := &DocumentQuery{Op: op}

	switch s := stmt.(type) {
	case *ast.SelectStmt:
		q.Collection = s.Table
		q.Filter = mongobuilders.BuildMongoFilter(s.Where)
		if !s.Wildcard {
			q.Projection = mongobuilders.BuildProjection(s.Columns)
		}

	case *ast.InsertStmt:
		q.Collection = s.Table
		bulk, err := insertDocuments(s.Form)
		if err != nil {
			return nil, err
		}
		q.Documents = bulk.Documents
		if bulk.Array {
			q.Op = mapping.OperationMap[mapping.MongoDB]["BULK_INSERT"]
		} else {
			q.Op = mapping.OperationMap[mapping.MongoDB]["INSERT"]
		}

	case *ast.UpdateStmt:
		q.Collection = s.Table
		q.Filter = mongobuilders.BuildMongoFilter(s.Where)
		q.Update = mongobuilders.BuildSetUpdate(s.Assignments)

	case *ast.DeleteStmt:
		q.Collection = s.Table
		q.Filter = mongobuilders.BuildMongoFilter(s.Where)

	case *ast.CreateStmt:
		if s.Object == ast.ObjectDatabase {
			q.Database = s.Name
		} else {
			q.Collection = s.Name
		}

	case *ast.DropStmt:
		if s.Object == ast.ObjectDatabase {
			q.Database = s.Name
		} else {
			q.Collection = s.Name
		}

	default:
		return nil, &UnsupportedError{Backend: mapping.MongoDB, Kind: stmt.Kind()}
	}

	return q, nil
}

// insertDocuments builds the documents of any insert form. A bulk array
// yields one document per element.
func insertDocuments(form ast.InsertForm) (*mongobuilders.Bulk, error) {
	switch f := form.(type) {
	case *ast.ColumnsAndValues:
		pairs, err := f.Pairs(SyntheticFieldPrefix)
		if err != nil {
			return nil, err
		}
		return &mongobuilders.Bulk{Documents: []bson.D{mongobuilders.BuildDocument(pairs)}}, nil
	case *ast.Base64Bulk:
		return mongobuilders.DecodeBase64Payload(f.Payload)
	case *ast.InlineJSONBulk:
		return mongobuilders.DecodeJSONPayload(f.Payload)
	}
	return nil, &UnsupportedError{Backend: mapping.MongoDB, Kind: "INSERT"}
}
