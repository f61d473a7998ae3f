package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a user's tracked product. Price bounds are maintained
// incrementally: ApplyPrice only ever tightens LowestPrice/HighestPrice,
// they are never recomputed from history. Currency and OriginalPrice are
// fixed at creation and must not be overwritten by later scrapes.
type Product struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"-"`
	UserID        primitive.ObjectID  `bson:"user_id" json:"-"`
	URL           string              `bson:"url" json:"url"`
	Name          string              `bson:"name" json:"name"`
	ImageURL      string              `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CurrentPrice  *float64            `bson:"current_price,omitempty" json:"current_price,omitempty"`
	OriginalPrice float64             `bson:"original_price" json:"original_price"`
	LowestPrice   *float64            `bson:"lowest_price,omitempty" json:"lowest_price,omitempty"`
	HighestPrice  *float64            `bson:"highest_price,omitempty" json:"highest_price,omitempty"`
	TargetPrice   *float64            `bson:"target_price,omitempty" json:"target_price,omitempty"`
	Currency      string              `bson:"currency" json:"currency"`
	Retailer      string              `bson:"retailer" json:"retailer"`
	Active        bool                `bson:"is_active" json:"is_active"`
	LastChecked   *primitive.DateTime `bson:"last_checked,omitempty" json:"last_checked,omitempty"`
	CreatedAt     primitive.DateTime  `bson:"created_at" json:"-"`
	UpdatedAt     primitive.DateTime  `bson:"updated_at" json:"-"`
}

// ApplyPrice records a newly observed price and reports whether it differs
// from the stored current price. LastChecked is touched either way.
func (p *Product) ApplyPrice(newPrice float64) bool {
	now := primitive.NewDateTimeFromTime(time.Now())
	p.LastChecked = &now
	p.UpdatedAt = now
	if p.CurrentPrice != nil && *p.CurrentPrice == newPrice {
		return false
	}
	p.CurrentPrice = &newPrice
	if p.LowestPrice == nil || newPrice < *p.LowestPrice {
		low := newPrice
		p.LowestPrice = &low
	}
	if p.HighestPrice == nil || newPrice > *p.HighestPrice {
		high := newPrice
		p.HighestPrice = &high
	}
	return true
}
