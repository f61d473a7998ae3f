package server

import (
	"context"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"priceghost/internal/client"
	"priceghost/internal/database"
	"priceghost/internal/model"
)

type Server struct {
	DB             store
	Client         client.Client
	Logger         logger
	AuthSecretKey  jwk.Key
	CronSecret     string
	SweepBatchSize int
	CheckInterval  time.Duration
}

// store is the persistence surface the handlers, sweep and digest run
// against. database.Database implements it; tests substitute an in-memory
// fake.
type store interface {
	ProductInsert(ctx context.Context, p model.Product) (string, error)
	ProductFindOne(ctx context.Context, productID primitive.ObjectID, userID primitive.ObjectID) (model.Product, error)
	ProductsFind(ctx context.Context, productIDs []primitive.ObjectID, userID primitive.ObjectID) ([]model.Product, error)
	ProductsFindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Product, error)
	ProductsFindActive(ctx context.Context) ([]model.Product, error)
	ProductPricesUpdate(ctx context.Context, p model.Product) error
	ProductUpdate(ctx context.Context, productID primitive.ObjectID, userID primitive.ObjectID, set bson.M) error
	ProductsDelete(ctx context.Context, productIDs []primitive.ObjectID, userID primitive.ObjectID) (int64, error)
	ProductsSetActive(ctx context.Context, productIDs []primitive.ObjectID, userID primitive.ObjectID, active bool) (int64, error)

	PriceObservationInsert(ctx context.Context, po model.PriceObservation) error
	PriceObservationsFind(ctx context.Context, productID primitive.ObjectID, start time.Time) ([]model.PriceObservation, error)
	PriceObservationsFindSince(ctx context.Context, productIDs []primitive.ObjectID, start time.Time) ([]model.PriceObservation, error)

	AlertsInsert(ctx context.Context, as []model.Alert) error
	AlertsFindByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]model.Alert, error)
	AlertsMarkRead(ctx context.Context, userID primitive.ObjectID, alertIDs []primitive.ObjectID) (int64, error)

	UserInsert(ctx context.Context, u model.User) (string, error)
	UserFindByEmail(ctx context.Context, email string) (model.User, error)
	UserFindByID(ctx context.Context, id string) (model.User, error)
	UsersFindDigestEnabled(ctx context.Context) ([]model.User, error)
	UserAddLoginToken(ctx context.Context, userID string, lt model.LoginToken) error
	UserRemoveLoginToken(ctx context.Context, userID string, tokenID string) error
	UserUpdatePreferences(ctx context.Context, userID primitive.ObjectID, prefs model.Preferences) error
	UserSetLastDigestSent(ctx context.Context, userID primitive.ObjectID, sentAt time.Time) error

	EmailLogInsert(ctx context.Context, el database.EmailLog) error
}

var _ store = database.Database{}

type logger interface {
	Trace(v ...any)
	Debug(v ...any)
	Info(v ...any)
	Warn(v ...any)
	Error(v ...any)
	Tracef(format string, v ...any)
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}
