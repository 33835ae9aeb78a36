package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/francois95140/unisql/engine/translator"
	"github.com/francois95140/unisql/mapping"
)

func TestMongoSession(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".users"
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
				bson.D{{Key: "name", Value: "Ann"}, {Key: "age", Value: int32(30)}}),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch,
				bson.D{{Key: "name", Value: "Bob"}, {Key: "age", Value: int32(41)}}),
		)

		s := NewMongoSession(mt.Client, mt.DB.Name(), nil)
		result, err := s.Run(ctx, &translator.DocumentQuery{
			Op:         mapping.DocFind,
			Collection: "users",
			Filter:     bson.D{{Key: "age", Value: bson.D{{Key: "$gt", Value: int64(18)}}}},
			Projection: bson.D{{Key: "name", Value: 1}, {Key: "age", Value: 1}, {Key: "_id", Value: 0}},
		})
		require.NoError(mt, err)

		require.Len(mt, result.Records, 2)
		assert.Equal(mt, "Ann", result.Records[0]["name"])
		assert.Equal(mt, "Bob", result.Records[1]["name"])
		assert.Equal(mt, "2 documents", result.Message)
		assert.NoError(mt, s.Close(ctx))
	})

	mt.Run("insertOne", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		s := NewMongoSession(mt.Client, mt.DB.Name(), nil)
		result, err := s.Run(ctx, &translator.DocumentQuery{
			Op:         mapping.DocInsertOne,
			Collection: "users",
			Documents:  []bson.D{{{Key: "name", Value: "Ann"}}},
		})
		require.NoError(mt, err)

		assert.EqualValues(mt, 1, result.RowsAffected)
		require.Len(mt, result.InsertedIDs, 1)
		assert.NotNil(mt, result.InsertedIDs[0])
	})

	mt.Run("insertMany", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		s := NewMongoSession(mt.Client, mt.DB.Name(), nil)
		result, err := s.Run(ctx, &translator.DocumentQuery{
			Op:         mapping.DocInsertMany,
			Collection: "users",
			Documents: []bson.D{
				{{Key: "_id", Value: "a"}},
				{{Key: "_id", Value: "b"}},
			},
		})
		require.NoError(mt, err)

		assert.EqualValues(mt, 2, result.RowsAffected)
		assert.Equal(mt, []any{"a", "b"}, result.InsertedIDs)
		assert.Equal(mt, "2 documents inserted", result.Message)
	})

	mt.Run("updateMany", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 3},
			bson.E{Key: "nModified", Value: 2},
		))

		s := NewMongoSession(mt.Client, mt.DB.Name(), nil)
		result, err := s.Run(ctx, &translator.DocumentQuery{
			Op:         mapping.DocUpdateMany,
			Collection: "users",
			Filter:     bson.D{},
			Update:     bson.D{{Key: "$set", Value: bson.D{{Key: "active", Value: true}}}},
		})
		require.NoError(mt, err)

		assert.EqualValues(mt, 2, result.RowsAffected)
		assert.Equal(mt, "3 documents matched, 2 modified", result.Message)
	})

	mt.Run("deleteMany", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		s := NewMongoSession(mt.Client, mt.DB.Name(), nil)
		result, err := s.Run(ctx, &translator.DocumentQuery{
			Op:         mapping.DocDeleteMany,
			Collection: "users",
			Filter:     bson.D{{Key: "id", Value: bson.D{{Key: "$eq", Value: int64(7)}}}},
		})
		require.NoError(mt, err)

		assert.EqualValues(mt, 1, result.RowsAffected)
		assert.Equal(mt, "1 document deleted", result.Message)
	})

	mt.Run("write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		s := NewMongoSession(mt.Client, mt.DB.Name(), nil)
		_, err := s.Run(ctx, &translator.DocumentQuery{
			Op:         mapping.DocInsertOne,
			Collection: "users",
			Documents:  []bson.D{{{Key: "_id", Value: 1}}},
		})

		var execErr *ExecutionError
		require.ErrorAs(mt, err, &execErr)
		assert.Equal(mt, mapping.MongoDB, execErr.Backend)
		assert.Contains(mt, err.Error(), "duplicate key")
	})

	mt.Run("create database needs no round trip", func(mt *mtest.T) {
		s := NewMongoSession(mt.Client, mt.DB.Name(), nil)
		result, err := s.Run(ctx, &translator.DocumentQuery{Op: mapping.DocCreateDatabase, Database: "shop"})
		require.NoError(mt, err)
		assert.Equal(mt, "database shop created", result.Message)
	})

	mt.Run("rejects other queries", func(mt *mtest.T) {
		s := NewMongoSession(mt.Client, mt.DB.Name(), nil)
		_, err := s.Run(ctx, &translator.RelationalQuery{Dialect: mapping.MySQL, SQL: "SELECT 1"})
		assert.Error(mt, err)
	})
}
