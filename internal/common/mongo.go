package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// MongoConfig mirrors DBConfig for the document backend.
type MongoConfig struct {
	MaxPoolSize uint64
	ConnTimeout time.Duration
	// OpTimeout bounds every operation, including the wait for a pooled connection.
	OpTimeout time.Duration
}

// NewMongo connects to the MongoDB deployment at URI and returns a handle on the named database.
func NewMongo(URI, name string, cfg MongoConfig) (*mongo.Database, error) {
	timeout := cfg.ConnTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	opts := options.Client().
		ApplyURI(URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	if cfg.OpTimeout > 0 {
		opts.SetTimeout(cfg.OpTimeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, MongoError(err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, MongoError(err)
	}

	return client.Database(name), nil
}

// MongoError classifies driver errors the same way StorageError does for Postgres.
func MongoError(err error) error {
	if err == nil {
		return nil
	}

	var sse topology.ServerSelectionError
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.As(err, &sse) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return StorageError(err)
}

// CloseMongo disconnects the client behind db.
func CloseMongo(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.Client().Disconnect(ctx)
}
