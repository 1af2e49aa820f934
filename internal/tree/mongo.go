package tree

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/torneios/internal/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var _ Backend = (*MongoBackend)(nil)

const mongoCollection = "tree_nodes"

// MongoBackend stores each top-level key as one document of the tree_nodes collection.
// The value is kept as a JSON string so keys never clash with BSON field rules.
type MongoBackend struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoNode struct {
	Key     string `bson:"_id"`
	Value   string `bson:"value"`
	Version int64  `bson:"version"`
}

// OpenMongo connects to uri and uses dbName for the tree_nodes collection.
func OpenMongo(ctx context.Context, uri, dbName string) (*MongoBackend, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	log.Info("Connected to MongoDB", "database", dbName)
	return &MongoBackend{
		client: client,
		coll:   client.Database(dbName).Collection(mongoCollection),
	}, nil
}

func (b *MongoBackend) Load(ctx context.Context, key string) (Document, error) {
	var node mongoNode
	err := b.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&node)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Document{}, nil
		}
		return Document{}, apperr.Wrap(apperr.BackingStoreReadFailure, apperr.InternalMessage, err)
	}
	return decodeDocument(key, node.Value, node.Version)
}

func (b *MongoBackend) Save(ctx context.Context, key string, value any, prev int64) (int64, error) {
	raw, err := encodeValue(value)
	if err != nil {
		return 0, err
	}

	if prev == 0 {
		if value == nil {
			return 0, nil
		}
		_, err := b.coll.InsertOne(ctx, mongoNode{Key: key, Value: raw, Version: 1})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return 0, ErrConflict
			}
			return 0, fmt.Errorf("failed to insert %s: %w", key, err)
		}
		return 1, nil
	}

	res, err := b.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: key}, {Key: "version", Value: prev}},
		bson.D{
			{Key: "$set", Value: bson.D{{Key: "value", Value: raw}}},
			{Key: "$inc", Value: bson.D{{Key: "version", Value: int64(1)}}},
		},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", key, err)
	}
	if res.MatchedCount == 0 {
		return 0, ErrConflict
	}
	return prev + 1, nil
}

// Drop removes the tree_nodes collection. Used by tests.
func (b *MongoBackend) Drop(ctx context.Context) error {
	return b.coll.Drop(ctx)
}

func (b *MongoBackend) Close() error {
	return b.client.Disconnect(context.Background())
}
