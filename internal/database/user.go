package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"priceghost/internal/model"
)

func (db Database) UserInsert(ctx context.Context, u model.User) (id string, err error) {
	u.LoginTokens = []model.LoginToken{}
	u.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	u.UpdatedAt = u.CreatedAt

	r, err := db.Collection(CollectionUsers).InsertOne(ctx, u)
	if err != nil {
		return "", errors.Wrapf(err, "error inserting User with email: %s", u.Email)
	}
	return r.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (db Database) UserFindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := db.Collection(CollectionUsers).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	return u, errors.Wrapf(err, "error finding User with email: %s", email)
}

func (db Database) UserFindByID(ctx context.Context, id string) (model.User, error) {
	var u model.User

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return u, errors.Wrapf(err, "error creating ObjectID from hex: %s", id)
	}

	err = db.Collection(CollectionUsers).FindOne(ctx, bson.M{"_id": objID}).Decode(&u)
	return u, errors.Wrapf(err, "error finding User with ID: %s", id)
}

// UsersFindDigestEnabled returns every user who opted in to the weekly
// digest, regardless of which day they picked.
func (db Database) UsersFindDigestEnabled(ctx context.Context) ([]model.User, error) {
	var us []model.User
	cur, err := db.Collection(CollectionUsers).Find(ctx, bson.M{"preferences.digest_enabled": true})
	if err != nil {
		return nil, errors.Wrap(err, "error getting cursor to find digest-enabled Users")
	}
	if err = cur.All(ctx, &us); err != nil {
		return nil, errors.Wrap(err, "error getting digest-enabled Users from cursor")
	}
	return us, nil
}

func (db Database) UserAddLoginToken(ctx context.Context, userID string, lt model.LoginToken) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errors.Wrapf(err, "error creating ObjectID from hex: %s", userID)
	}

	lt.CreatedAt = primitive.NewDateTimeFromTime(time.Now())

	res, err := db.Collection(CollectionUsers).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$push": bson.M{
			"login_tokens": bson.M{
				"$each":     []model.LoginToken{lt},
				"$position": 0,
				"$slice":    8,
			},
		}},
	)
	if err != nil {
		return errors.Wrapf(err, "error when adding login token to User with ID: %s", userID)
	}
	if res.ModifiedCount == 0 {
		return errors.Errorf("User not modified when adding login token to User with ID: %s", userID)
	}
	return nil
}

func (db Database) UserRemoveLoginToken(ctx context.Context, userID string, tokenID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errors.Wrapf(err, "error creating ObjectID from hex: %s", userID)
	}

	res, err := db.Collection(CollectionUsers).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$pull": bson.M{"login_tokens": bson.M{"token_id": tokenID}}},
	)
	if err != nil {
		return errors.Wrapf(err, "error when removing login token from User with ID: %s, token ID: %s", userID, tokenID)
	}
	if res.ModifiedCount == 0 {
		return errors.Errorf("User not modified when removing login token from User with ID: %s, token ID: %s", userID, tokenID)
	}
	return nil
}

func (db Database) UserUpdatePreferences(ctx context.Context, userID primitive.ObjectID, prefs model.Preferences) error {
	res, err := db.Collection(CollectionUsers).UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{
			"preferences": prefs,
			"updated_at":  primitive.NewDateTimeFromTime(time.Now()),
		}},
	)
	if err != nil {
		return errors.Wrapf(err, "error updating Preferences for User with ID: %s", userID.Hex())
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(ErrNoDocumentsModified, "User not found when updating Preferences, ID: %s", userID.Hex())
	}
	return nil
}

// UserSetLastDigestSent stamps the digest send time used by the
// once-a-week duplicate guard.
func (db Database) UserSetLastDigestSent(ctx context.Context, userID primitive.ObjectID, sentAt time.Time) error {
	_, err := db.Collection(CollectionUsers).UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{
			"preferences.last_digest_sent": primitive.NewDateTimeFromTime(sentAt),
		}},
	)
	return errors.Wrapf(err, "error setting last digest sent for User with ID: %s", userID.Hex())
}
