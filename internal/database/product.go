package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"priceghost/internal/model"
)

func (db Database) ProductInsert(ctx context.Context, p model.Product) (id string, err error) {
	var existing model.Product
	err = db.Collection(CollectionProducts).FindOne(
		ctx,
		bson.M{"user_id": p.UserID, "url": p.URL},
	).Decode(&existing)
	if err == nil {
		return existing.ID.Hex(), ErrProductExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", errors.Wrapf(err, "error trying to find existing Product with URL: %s", p.URL)
	}

	p.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	p.UpdatedAt = p.CreatedAt
	r, err := db.Collection(CollectionProducts).InsertOne(ctx, p)
	if err != nil {
		return "", errors.Wrapf(err, "error inserting Product: %+v", p)
	}
	return r.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (db Database) ProductFindOne(ctx context.Context, productID primitive.ObjectID, userID primitive.ObjectID) (model.Product, error) {
	var p model.Product
	err := db.Collection(CollectionProducts).FindOne(
		ctx,
		bson.M{"_id": productID, "user_id": userID},
	).Decode(&p)
	return p, errors.Wrapf(err, "error finding Product with ID: %s", productID.Hex())
}

func (db Database) ProductsFindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Product, error) {
	var ps []model.Product
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := db.Collection(CollectionProducts).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "error getting cursor to find Products for UserID: %s", userID.Hex())
	}
	if err = cur.All(ctx, &ps); err != nil {
		return nil, errors.Wrapf(err, "error getting Products from cursor for UserID: %s", userID.Hex())
	}
	return ps, nil
}

func (db Database) ProductsFind(ctx context.Context, productIDs []primitive.ObjectID, userID primitive.ObjectID) ([]model.Product, error) {
	var ps []model.Product
	cur, err := db.Collection(CollectionProducts).Find(
		ctx,
		bson.M{"_id": bson.M{"$in": productIDs}, "user_id": userID},
	)
	if err != nil {
		return nil, errors.Wrapf(err, "error getting cursor to find Products, IDs: %v", productIDs)
	}
	if err = cur.All(ctx, &ps); err != nil {
		return nil, errors.Wrapf(err, "error getting Products from cursor, IDs: %v", productIDs)
	}
	return ps, nil
}

func (db Database) ProductsFindActive(ctx context.Context) ([]model.Product, error) {
	var ps []model.Product
	cur, err := db.Collection(CollectionProducts).Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, errors.Wrap(err, "error getting cursor to find active Products")
	}
	if err = cur.All(ctx, &ps); err != nil {
		return nil, errors.Wrap(err, "error getting active Products from cursor")
	}
	return ps, nil
}

// ProductPricesUpdate persists the price fields ApplyPrice mutates. The
// product's currency and original price are deliberately not written.
func (db Database) ProductPricesUpdate(ctx context.Context, p model.Product) error {
	res, err := db.Collection(CollectionProducts).UpdateOne(
		ctx,
		bson.M{"_id": p.ID},
		bson.M{"$set": bson.M{
			"current_price": p.CurrentPrice,
			"lowest_price":  p.LowestPrice,
			"highest_price": p.HighestPrice,
			"last_checked":  p.LastChecked,
			"updated_at":    p.UpdatedAt,
		}},
	)
	if err != nil {
		return errors.Wrapf(err, "error updating prices for Product with ID: %s", p.ID.Hex())
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(ErrNoDocumentsModified, "Product not found when updating prices, ID: %s", p.ID.Hex())
	}
	return nil
}

// ProductUpdate applies a caller-built $set document to one of the user's
// products. updated_at is always refreshed.
func (db Database) ProductUpdate(ctx context.Context, productID primitive.ObjectID, userID primitive.ObjectID, set bson.M) error {
	set["updated_at"] = primitive.NewDateTimeFromTime(time.Now())
	res, err := db.Collection(CollectionProducts).UpdateOne(
		ctx,
		bson.M{"_id": productID, "user_id": userID},
		bson.M{"$set": set},
	)
	if err != nil {
		return errors.Wrapf(err, "error updating Product with ID: %s, set: %+v", productID.Hex(), set)
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(ErrNoDocumentsModified, "Product not found when updating, ID: %s", productID.Hex())
	}
	return nil
}

// ProductsDelete removes the user's products along with their price
// observations and alerts, and returns how many products were deleted.
func (db Database) ProductsDelete(ctx context.Context, productIDs []primitive.ObjectID, userID primitive.ObjectID) (int64, error) {
	res, err := db.Collection(CollectionProducts).DeleteMany(
		ctx,
		bson.M{"_id": bson.M{"$in": productIDs}, "user_id": userID},
	)
	if err != nil {
		return 0, errors.Wrapf(err, "error deleting Products, IDs: %v", productIDs)
	}
	_, err = db.Collection(CollectionPriceHistories).DeleteMany(
		ctx,
		bson.M{"product_id": bson.M{"$in": productIDs}},
	)
	if err != nil {
		return res.DeletedCount, errors.Wrapf(err, "error deleting PriceObservations for Products, IDs: %v", productIDs)
	}
	_, err = db.Collection(CollectionAlerts).DeleteMany(
		ctx,
		bson.M{"product_id": bson.M{"$in": productIDs}, "user_id": userID},
	)
	if err != nil {
		return res.DeletedCount, errors.Wrapf(err, "error deleting Alerts for Products, IDs: %v", productIDs)
	}
	return res.DeletedCount, nil
}

// ProductsSetActive flips is_active on the user's products and returns how
// many matched.
func (db Database) ProductsSetActive(ctx context.Context, productIDs []primitive.ObjectID, userID primitive.ObjectID, active bool) (int64, error) {
	res, err := db.Collection(CollectionProducts).UpdateMany(
		ctx,
		bson.M{"_id": bson.M{"$in": productIDs}, "user_id": userID},
		bson.M{"$set": bson.M{
			"is_active":  active,
			"updated_at": primitive.NewDateTimeFromTime(time.Now()),
		}},
	)
	if err != nil {
		return 0, errors.Wrapf(err, "error setting is_active to %t for Products, IDs: %v", active, productIDs)
	}
	return res.MatchedCount, nil
}
