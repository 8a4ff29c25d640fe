package migration

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// migrateDatabaseV0ToV1 creates the indexes the dedup invariant relies on:
// a release id can be recorded as seen at most once per provider.
func (m *Migrator) migrateDatabaseV0ToV1() error {
	ctx := context.Background()
	database := m.Database.Underlying()

	releaseIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "provider", Value: 1},
			{Key: "releaseid", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := database.Collection("releases").Indexes().CreateOne(ctx, releaseIndex); err != nil {
		return fmt.Errorf("create releases index failed: %w", err)
	}

	subIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "provider", Value: 1},
			{Key: "contentid", Value: 1},
		},
	}
	if _, err := database.Collection("subscriptions").Indexes().CreateOne(ctx, subIndex); err != nil {
		return fmt.Errorf("create subscriptions index failed: %w", err)
	}

	return nil
}
