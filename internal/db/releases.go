package db

import (
	"context"

	"github.com/Fesaa/mnema/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FilterUnseen returns the subset of the given release ids that has never
// been marked as seen
func (d *Database) FilterUnseen(ctx context.Context, releaseIDs []string) ([]string, error) {
	if len(releaseIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	filter := bson.D{
		{Key: "releaseid", Value: bson.D{{Key: "$in", Value: releaseIDs}}},
	}
	opts := options.Find().SetProjection(bson.D{{Key: "releaseid", Value: 1}})

	cur, err := d.releases.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var seen []model.ContentRelease
	if err = cur.All(ctx, &seen); err != nil {
		return nil, err
	}

	seenIDs := make(map[string]bool, len(seen))
	for _, r := range seen {
		seenIDs[r.ReleaseID] = true
	}

	unseen := make([]string, 0, len(releaseIDs))
	for _, id := range releaseIDs {
		if !seenIDs[id] {
			unseen = append(unseen, id)
		}
	}

	return unseen, nil
}

// MarkSeen records the given releases as processed. Upserts, so re-marking
// an already seen release is a no-op.
func (d *Database) MarkSeen(ctx context.Context, releases []model.ContentRelease) error {
	if len(releases) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	models := make([]mongo.WriteModel, 0, len(releases))
	for _, r := range releases {
		filter := bson.D{
			{Key: "provider", Value: r.Provider},
			{Key: "releaseid", Value: r.ReleaseID},
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(filter).
			SetReplacement(r).
			SetUpsert(true))
	}

	_, err := d.releases.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}
