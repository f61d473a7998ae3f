package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"priceghost/internal/model"
)

func (db Database) PriceObservationInsert(ctx context.Context, po model.PriceObservation) (err error) {
	if po.Timestamp == 0 {
		po.Timestamp = primitive.NewDateTimeFromTime(time.Now())
	}
	_, err = db.Collection(CollectionPriceHistories).InsertOne(ctx, po)
	return errors.Wrapf(err, "error inserting PriceObservation: %+v", po)
}

// PriceObservationsFind returns a product's observations since start,
// oldest first, for the price history chart.
func (db Database) PriceObservationsFind(
	ctx context.Context, productID primitive.ObjectID, start time.Time,
) ([]model.PriceObservation, error) {
	var pos []model.PriceObservation
	opts := options.Find().SetSort(bson.M{"ts": 1})
	cur, err := db.Collection(CollectionPriceHistories).Find(ctx, bson.M{
		"product_id": productID,
		"ts":         bson.M{"$gte": primitive.NewDateTimeFromTime(start)},
	}, opts)
	if err != nil {
		return nil, errors.Wrapf(err,
			"error getting cursor to find PriceObservations for ProductID: %s, start: %s",
			productID.Hex(), start.Format(time.RFC3339))
	}
	if err = cur.All(ctx, &pos); err != nil {
		return nil, errors.Wrapf(err,
			"error getting PriceObservations from cursor for ProductID: %s, start: %s",
			productID.Hex(), start.Format(time.RFC3339))
	}
	return pos, nil
}

// PriceObservationsFindSince returns every observation for the given
// products at or after start. The digest builder consumes this in one pass.
func (db Database) PriceObservationsFindSince(
	ctx context.Context, productIDs []primitive.ObjectID, start time.Time,
) ([]model.PriceObservation, error) {
	var pos []model.PriceObservation
	cur, err := db.Collection(CollectionPriceHistories).Find(ctx, bson.M{
		"product_id": bson.M{"$in": productIDs},
		"ts":         bson.M{"$gte": primitive.NewDateTimeFromTime(start)},
	})
	if err != nil {
		return nil, errors.Wrapf(err,
			"error getting cursor to find PriceObservations for %d products, start: %s",
			len(productIDs), start.Format(time.RFC3339))
	}
	if err = cur.All(ctx, &pos); err != nil {
		return nil, errors.Wrapf(err,
			"error getting PriceObservations from cursor for %d products, start: %s",
			len(productIDs), start.Format(time.RFC3339))
	}
	return pos, nil
}
