package store

import (
	"context"
	"errors"
	"fmt"

	"pokedex-catalog/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoBackend stores each collection in the MongoDB collection of the same
// name ("Pokedex", "Moves").
type MongoBackend struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects and pings the server before returning.
func OpenMongo(ctx context.Context, uri, database string) (*MongoBackend, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return &MongoBackend{client: client, db: client.Database(database)}, nil
}

func (b *MongoBackend) ListAll(ctx context.Context, schema models.Schema, out any) error {
	cur, err := b.db.Collection(schema.Collection).Find(ctx, bson.D{})
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

func (b *MongoBackend) FindOne(ctx context.Context, schema models.Schema, field models.Field, value any, out any) (bool, error) {
	filter := bson.D{{Key: field.Name, Value: value}}
	err := b.db.Collection(schema.Collection).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (b *MongoBackend) Insert(ctx context.Context, schema models.Schema, doc models.Record) error {
	_, err := b.db.Collection(schema.Collection).InsertOne(ctx, doc)
	return err
}

func (b *MongoBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx, readpref.Primary())
}

func (b *MongoBackend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}
