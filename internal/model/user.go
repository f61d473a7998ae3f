package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	Password    []byte             `bson:"password"`
	LoginTokens []LoginToken       `bson:"login_tokens"`
	Preferences Preferences        `bson:"preferences"`
	CreatedAt   primitive.DateTime `bson:"created_at"`
	UpdatedAt   primitive.DateTime `bson:"updated_at"`
}

type LoginToken struct {
	TokenID    string             `bson:"token_id"`
	Token      []byte             `bson:"token"`
	Expiration primitive.DateTime `bson:"expiration"`
	CreatedAt  primitive.DateTime `bson:"created_at"`
}

// Preferences holds the weekly digest opt-in. DigestDay is a lowercase
// English weekday name ("monday" ... "sunday").
type Preferences struct {
	DigestEnabled  bool                `bson:"digest_enabled" json:"digest_enabled"`
	DigestDay      string              `bson:"digest_day" json:"digest_day"`
	LastDigestSent *primitive.DateTime `bson:"last_digest_sent,omitempty" json:"last_digest_sent,omitempty"`
}
