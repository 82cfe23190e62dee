package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionRequestNonces = "request_nonces"
)

// RequestNonce marks a signed request as used until it expires.
type RequestNonce struct {
	Id        *primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Hash      string              `bson:"hash" json:"hash"`
	Address   string              `bson:"address" json:"address"`
	ExpiresAt time.Time           `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}
