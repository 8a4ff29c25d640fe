package db

import (
	"context"
	"errors"

	"github.com/Fesaa/mnema/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Version is the schema version the code expects
const Version = 1

const metaInfoID = "mnema"

func (d *Database) GetMetaInfo(ctx context.Context) (*model.MetaInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	result := d.db.Collection("metainfo").FindOne(ctx, bson.D{{Key: "_id", Value: metaInfoID}})
	if errors.Is(result.Err(), mongo.ErrNoDocuments) {
		return &model.MetaInfo{ID: metaInfoID}, nil
	}
	if result.Err() != nil {
		return nil, result.Err()
	}

	mi := model.MetaInfo{}
	if err := result.Decode(&mi); err != nil {
		return nil, err
	}

	return &mi, nil
}

func (d *Database) SetMetaInfo(ctx context.Context, mi model.MetaInfo) error {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	mi.ID = metaInfoID
	opts := options.Replace().SetUpsert(true)
	_, err := d.db.Collection("metainfo").ReplaceOne(ctx, bson.D{{Key: "_id", Value: metaInfoID}}, &mi, opts)
	return err
}
