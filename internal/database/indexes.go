package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"catalog-admin/internal/logging"
	"catalog-admin/internal/store"
)

func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// Every list orders by its creation time with an _id tie-break; pickers and
// search windows order by name.
var collectionIndexes = map[string][]mongo.IndexModel{
	store.Admins: {
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
		createdIndex("created_at"),
	},
	store.Artisans:   {createdIndex("created_at"), nameIndex("name")},
	store.Categories: {createdIndex("created_at")},
	store.Products:   {createdIndex("created_at"), nameIndex("name")},
	store.Genres:     {createdIndex("created_at")},
	store.Banners:    {createdIndex("createdAt")},
}

func createdIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: -1}, {Key: store.IDField, Value: -1}},
		Options: options.Index().SetName(field + "_desc"),
	}
}

func nameIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}, {Key: store.IDField, Value: 1}},
		Options: options.Index().SetName(field + "_asc"),
	}
}

// EnsureIndexes creates the indexes each collection needs. Failures are
// logged per collection and the first one is returned.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var firstErr error
	for name, models := range collectionIndexes {
		names, err := db.Collection(name).Indexes().CreateMany(ctx, models)
		if err != nil {
			logging.L.Warn("index creation failed", zap.String("collection", name), zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("indexes for %s: %w", name, err)
			}
			continue
		}
		logging.L.Info("indexes ready", zap.String("collection", name), zap.Strings("indexes", names))
	}
	return firstErr
}
