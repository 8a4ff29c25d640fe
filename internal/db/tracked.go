package db

import (
	"context"
	"errors"
	"time"

	"github.com/Fesaa/mnema/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetActiveSubscriptions returns all enabled subscriptions
func (d *Database) GetActiveSubscriptions(ctx context.Context) ([]*model.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	cur, err := d.subs.Find(ctx, bson.D{{Key: "enabled", Value: true}})
	if err != nil {
		return nil, err
	}

	var results []*model.Subscription
	if err = cur.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}

func (d *Database) AddSubscription(ctx context.Context, sub *model.Subscription) error {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	if sub.ID == "" {
		sub.ID = primitive.NewObjectID().Hex()
	}
	_, err := d.subs.InsertOne(ctx, sub)
	return err
}

func (d *Database) GetSubscription(ctx context.Context, id string) (*model.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	result := d.subs.FindOne(ctx, bson.D{{Key: "_id", Value: id}})
	if errors.Is(result.Err(), mongo.ErrNoDocuments) {
		return nil, nil
	}
	if result.Err() != nil {
		return nil, result.Err()
	}

	sub := model.Subscription{}
	if err := result.Decode(&sub); err != nil {
		return nil, err
	}

	return &sub, nil
}

func (d *Database) DeleteSubscription(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	_, err := d.subs.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}

// UpdateSubscriptionRefresh stores the moment a subscription last matched
func (d *Database) UpdateSubscriptionRefresh(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	update := bson.D{{Key: "$set", Value: bson.D{{Key: "lastrefresh", Value: at}}}}
	_, err := d.subs.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	return err
}

// GetMonitoredSeries returns all monitored series
func (d *Database) GetMonitoredSeries(ctx context.Context) ([]*model.MonitoredSeries, error) {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	cur, err := d.series.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var results []*model.MonitoredSeries
	if err = cur.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}

func (d *Database) AddMonitoredSeries(ctx context.Context, series *model.MonitoredSeries) error {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	if series.ID == "" {
		series.ID = primitive.NewObjectID().Hex()
	}
	_, err := d.series.InsertOne(ctx, series)
	return err
}

func (d *Database) DeleteMonitoredSeries(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	_, err := d.series.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}
