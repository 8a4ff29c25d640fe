package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Database struct {
	cli      *mongo.Client
	db       *mongo.Database
	releases *mongo.Collection
	subs     *mongo.Collection
	series   *mongo.Collection
}

const databaseTimeout = 40 * time.Second

// Connect creates database connection
func Connect(uri string) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), databaseTimeout)
	defer cancel()

	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to db failed: %w", err)
	}

	if err = cli.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("connect to db failed: %w", err)
	}

	db := &Database{
		cli:      cli,
		db:       cli.Database("mnema"),
		releases: cli.Database("mnema").Collection("releases"),
		subs:     cli.Database("mnema").Collection("subscriptions"),
		series:   cli.Database("mnema").Collection("series"),
	}

	return db, nil
}

// Underlying exposes the raw database handle for migrations
func (d *Database) Underlying() *mongo.Database {
	return d.db
}
