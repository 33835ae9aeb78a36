package validator

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/francois95140/unisql/engine/translator"
	"github.com/francois95140/unisql/mapping"
)

var (
	ErrMissingCollection = errors.New("collection name is empty")
	ErrMissingDatabase   = errors.New("database name is empty")
	ErrOperatorField     = errors.New("document field names must not start with '$'")
	ErrNoDocuments       = errors.New("insert has no documents")
)

// ValidateMongoDB checks that every document of the operation encodes as
// BSON and that inserted documents carry no operator keys
func ValidateMongoDB(q *translator.DocumentQuery) error {
	switch q.Op {
	case mapping.DocCreateDatabase, mapping.DocDropDatabase:
		if q.Database == "" {
			return ErrMissingDatabase
		}
		return nil
	}
	if q.Collection == "" {
		return ErrMissingCollection
	}

	for name, doc := range map[string]bson.D{"filter": q.Filter, "projection": q.Projection, "update": q.Update} {
		if doc == nil {
			continue
		}
		if err := ValidateMongoDBDocument(doc); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	switch q.Op {
	case mapping.DocInsertOne, mapping.DocInsertMany:
		if len(q.Documents) == 0 {
			return ErrNoDocuments
		}
		for i, doc := range q.Documents {
			if err := ValidateMongoDBDocument(doc); err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}
			for _, e := range doc {
				if strings.HasPrefix(e.Key, "$") {
					return fmt.Errorf("document %d: %w: %s", i, ErrOperatorField, e.Key)
				}
			}
		}
	}
	return nil
}

// ValidateMongoDBDocument validates that a document encodes as BSON
func ValidateMongoDBDocument(doc bson.D) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	_, err := bson.Marshal(doc)
	return err
}
