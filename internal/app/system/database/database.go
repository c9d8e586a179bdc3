// internal/app/system/database/database.go

// Package database is the application's MongoDB extension: one client and one
// database handle, created at startup and handed to the stores that need them.
package database

import (
	"context"
	"errors"
	"fmt"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Options configures Connect.
type Options struct {
	URI         string
	Database    string
	MaxPoolSize uint64
	MinPoolSize uint64
}

// DB is a bound MongoDB client and database.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// New wraps an existing client.
func New(client *mongo.Client, name string) *DB {
	return &DB{Client: client, Database: client.Database(name)}
}

// Connect validates the URI and creates a client. The driver dials lazily,
// so an unreachable server surfaces on first use or on Ping, not here.
func Connect(ctx context.Context, opts Options, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := wafflemongo.ValidateURI(opts.URI); err != nil {
		return nil, fmt.Errorf("database: invalid MongoDB URI: %w", err)
	}
	if opts.Database == "" {
		return nil, errors.New("database: database name is required")
	}

	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(opts.MaxPoolSize)
	}
	if opts.MinPoolSize > 0 {
		clientOpts.SetMinPoolSize(opts.MinPoolSize)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	logger.Info("mongo client created",
		zap.String("database", opts.Database),
		zap.Uint64("max_pool", opts.MaxPoolSize))
	return New(client, opts.Database), nil
}

// Collection returns a handle to the named collection.
func (d *DB) Collection(name string) *mongo.Collection {
	return d.Database.Collection(name)
}

// Ping checks that the primary is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (d *DB) Close(ctx context.Context) error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Disconnect(ctx)
}
