package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// PriceObservation is one timestamped price sample. Observations are
// append-only and are removed only when their product is deleted.
type PriceObservation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ProductID primitive.ObjectID `bson:"product_id" json:"-"`
	Price     float64            `bson:"pr" json:"price"`
	Currency  string             `bson:"cur" json:"currency"`
	Timestamp primitive.DateTime `bson:"ts" json:"ts"`
}
