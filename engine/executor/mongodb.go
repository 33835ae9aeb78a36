package executor

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/francois95140/unisql/engine/translator"
	"github.com/francois95140/unisql/mapping"
)

// MongoProvider connects a new client per session
type MongoProvider struct {
	uri      string
	database string
	logger   *slog.Logger
}

// NewMongoProvider creates a provider for the given URI. Collection-level
// operations run against database.
// If logger is nil, a discard logger is used.
func NewMongoProvider(uri, database string, logger *slog.Logger) *MongoProvider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &MongoProvider{uri: uri, database: database, logger: logger}
}

// Backend returns MongoDB
func (p *MongoProvider) Backend() mapping.Backend {
	return mapping.MongoDB
}

// Open connects and pings the primary
func (p *MongoProvider) Open(ctx context.Context) (Session, error) {
	p.logger.Debug("connecting", slog.String("backend", mapping.MongoDB.String()), slog.String("database", p.database))

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(p.uri))
	if err != nil {
		return nil, &ConnectionError{Backend: mapping.MongoDB, Err: err}
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, &ConnectionError{Backend: mapping.MongoDB, Err: err}
	}

	s := NewMongoSession(client, p.database, p.logger)
	s.owned = true
	return s, nil
}

// MongoSession runs document queries on one client
type MongoSession struct {
	client *mongo.Client
	db     *mongo.Database
	owned  bool
	logger *slog.Logger
}

// NewMongoSession wraps a connected client. The caller keeps ownership of
// client; Close does not disconnect it.
func NewMongoSession(client *mongo.Client, database string, logger *slog.Logger) *MongoSession {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &MongoSession{client: client, db: client.Database(database), logger: logger}
}

// Run executes a *translator.DocumentQuery
func (s *MongoSession) Run(ctx context.Context, q translator.Query) (*Result, error) {
	dq, ok := q.(*translator.DocumentQuery)
	if !ok {
		return nil, wrongQuery(mapping.MongoDB, q)
	}

	s.logger.Debug("executing mongo operation",
		slog.String("operation", dq.Op),
		slog.String("collection", dq.Collection))

	result, err := s.run(ctx, dq)
	if err != nil {
		return nil, &ExecutionError{Backend: mapping.MongoDB, Query: dq.String(), Err: err}
	}
	return result, nil
}

func (s *MongoSession) run(ctx context.Context, q *translator.DocumentQuery) (*Result, error) {
	coll := s.db.Collection(q.Collection)

	switch q.Op {
	case mapping.DocFind:
		return s.find(ctx, coll, q)

	case mapping.DocInsertOne:
		res, err := coll.InsertOne(ctx, q.Documents[0])
		if err != nil {
			return nil, err
		}
		return &Result{
			RowsAffected: 1,
			InsertedIDs:  []any{res.InsertedID},
			Message:      fmt.Sprintf("document inserted with id %v", res.InsertedID),
		}, nil

	case mapping.DocInsertMany:
		docs := make([]any, len(q.Documents))
		for i, d := range q.Documents {
			docs[i] = d
		}
		res, err := coll.InsertMany(ctx, docs)
		if err != nil {
			return nil, err
		}
		n := int64(len(res.InsertedIDs))
		return &Result{
			RowsAffected: n,
			InsertedIDs:  res.InsertedIDs,
			Message:      Summary(n, "document", "inserted"),
		}, nil

	case mapping.DocUpdateMany:
		res, err := coll.UpdateMany(ctx, q.Filter, q.Update)
		if err != nil {
			return nil, err
		}
		return &Result{
			RowsAffected: res.ModifiedCount,
			Message:      UpdateSummary(res.MatchedCount, res.ModifiedCount),
		}, nil

	case mapping.DocDeleteMany:
		res, err := coll.DeleteMany(ctx, q.Filter)
		if err != nil {
			return nil, err
		}
		return &Result{
			RowsAffected: res.DeletedCount,
			Message:      Summary(res.DeletedCount, "document", "deleted"),
		}, nil

	case mapping.DocCreateCollection:
		if err := s.db.CreateCollection(ctx, q.Collection); err != nil {
			return nil, err
		}
		return &Result{Message: fmt.Sprintf("collection %s created", q.Collection)}, nil

	case mapping.DocDropCollection:
		if err := coll.Drop(ctx); err != nil {
			return nil, err
		}
		return &Result{Message: fmt.Sprintf("collection %s dropped", q.Collection)}, nil

	case mapping.DocCreateDatabase:
		// MongoDB creates databases on first write
		return &Result{Message: fmt.Sprintf("database %s created", q.Database)}, nil

	case mapping.DocDropDatabase:
		if err := s.client.Database(q.Database).Drop(ctx); err != nil {
			return nil, err
		}
		return &Result{Message: fmt.Sprintf("database %s dropped", q.Database)}, nil
	}

	return nil, fmt.Errorf("unsupported MongoDB operation: %s", q.Op)
}

func (s *MongoSession) find(ctx context.Context, coll *mongo.Collection, q *translator.DocumentQuery) (*Result, error) {
	opts := options.Find()
	if q.Projection != nil {
		opts.SetProjection(q.Projection)
	}

	cursor, err := coll.Find(ctx, q.Filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	records := []map[string]any{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		records = append(records, bsonToMap(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return &Result{Records: records, Message: Count(int64(len(records)), "document")}, nil
}

// Close disconnects the client when the session opened it
func (s *MongoSession) Close(ctx context.Context) error {
	if !s.owned {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func bsonToMap(doc bson.M) map[string]any {
	result := make(map[string]any, len(doc))
	for k, v := range doc {
		result[k] = v
	}
	return result
}
