package database

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"priceghost/internal/model"
)

func (db Database) AlertsInsert(ctx context.Context, as []model.Alert) error {
	if len(as) == 0 {
		return nil
	}
	docs := make([]any, len(as))
	for i, a := range as {
		docs[i] = a
	}
	_, err := db.Collection(CollectionAlerts).InsertMany(ctx, docs)
	return errors.Wrapf(err, "error inserting %d Alerts", len(as))
}

func (db Database) AlertsFindByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]model.Alert, error) {
	var as []model.Alert
	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit)
	cur, err := db.Collection(CollectionAlerts).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "error getting cursor to find Alerts for UserID: %s", userID.Hex())
	}
	if err = cur.All(ctx, &as); err != nil {
		return nil, errors.Wrapf(err, "error getting Alerts from cursor for UserID: %s", userID.Hex())
	}
	return as, nil
}

// AlertsMarkRead flips the read flag on the given alerts. An empty alertIDs
// slice marks every alert the user has.
func (db Database) AlertsMarkRead(ctx context.Context, userID primitive.ObjectID, alertIDs []primitive.ObjectID) (int64, error) {
	filter := bson.M{"user_id": userID}
	if len(alertIDs) > 0 {
		filter["_id"] = bson.M{"$in": alertIDs}
	}
	res, err := db.Collection(CollectionAlerts).UpdateMany(
		ctx,
		filter,
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, errors.Wrapf(err, "error marking Alerts read for UserID: %s", userID.Hex())
	}
	return res.ModifiedCount, nil
}
