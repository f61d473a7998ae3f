package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EmailTypeWelcome      = "welcome"
	EmailTypePriceDrop    = "price_drop"
	EmailTypeWeeklyDigest = "weekly_digest"
)

// EmailLog records one outbound email for auditing delivery problems.
type EmailLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	EmailType string             `bson:"email_type"`
	Subject   string             `bson:"subject"`
	MessageID string             `bson:"message_id,omitempty"`
	Error     string             `bson:"error,omitempty"`
	SentAt    primitive.DateTime `bson:"sent_at"`
}

func (db Database) EmailLogInsert(ctx context.Context, el EmailLog) error {
	el.SentAt = primitive.NewDateTimeFromTime(time.Now())
	_, err := db.Collection(CollectionEmailLogs).InsertOne(ctx, el)
	return errors.Wrapf(err, "error inserting EmailLog: %+v", el)
}
