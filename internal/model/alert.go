package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AlertTypePriceDrop     = "price_drop"
	AlertTypeTargetReached = "target_reached"
)

type Alert struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"alert_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"-"`
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	AlertType string             `bson:"alert_type" json:"alert_type"`
	Message   string             `bson:"message" json:"message"`
	OldPrice  float64            `bson:"old_price" json:"old_price"`
	NewPrice  float64            `bson:"new_price" json:"new_price"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt primitive.DateTime `bson:"created_at" json:"created_at"`
}

// AlertsForChange builds the alerts a price change warrants: a price-drop
// alert when the price strictly decreased, plus a target-reached alert when
// the drop lands at or below the product's target price. A non-drop never
// alerts, so at most two alerts result from one observation.
func AlertsForChange(p Product, oldPrice, newPrice float64) []Alert {
	if newPrice >= oldPrice {
		return nil
	}
	now := primitive.NewDateTimeFromTime(time.Now())
	alerts := []Alert{{
		UserID:    p.UserID,
		ProductID: p.ID,
		AlertType: AlertTypePriceDrop,
		Message: fmt.Sprintf("Price dropped from %s to %s for %s",
			FormatPrice(oldPrice, p.Currency), FormatPrice(newPrice, p.Currency), p.Name),
		OldPrice:  oldPrice,
		NewPrice:  newPrice,
		CreatedAt: now,
	}}
	if p.TargetPrice != nil && newPrice <= *p.TargetPrice {
		alerts = append(alerts, Alert{
			UserID:    p.UserID,
			ProductID: p.ID,
			AlertType: AlertTypeTargetReached,
			Message: fmt.Sprintf("Target price reached! %s is now %s (target: %s)",
				p.Name, FormatPrice(newPrice, p.Currency), FormatPrice(*p.TargetPrice, p.Currency)),
			OldPrice:  oldPrice,
			NewPrice:  newPrice,
			CreatedAt: now,
		})
	}
	return alerts
}
