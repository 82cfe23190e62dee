package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionLaunches  = "launches"
	CollectionLaunchers = "launchers"
)

type Launch struct {
	Id               *primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	User             string              `bson:"user" json:"user"`
	MissionID        uint64              `bson:"mission_id" json:"mission_id"`
	Index            uint64              `bson:"index" json:"index"`
	ShipCount        uint64              `bson:"ship_count" json:"ship_count"`
	NativePayment    string              `bson:"native_payment" json:"native_payment"`
	PaymentReference *string             `bson:"payment_reference,omitempty" json:"payment_reference,omitempty"`
	Multiplier       uint8               `bson:"multiplier" json:"multiplier"`
	Stake            string              `bson:"stake" json:"stake"`
	RewardClaimed    bool                `bson:"reward_claimed" json:"reward_claimed"`
	TokensMinted     bool                `bson:"tokens_minted" json:"tokens_minted"`
	MintedCount      uint64              `bson:"minted_count" json:"minted_count"`
	CreatedAt        time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time           `bson:"updated_at" json:"updated_at"`
}

// Launcher marks a user that has launched at least once, on any mission.
type Launcher struct {
	Id            *primitive.ObjectID `bson:"_id,omitempty"`
	User          string              `bson:"user"`
	FirstLaunchAt time.Time           `bson:"first_launch_at"`
}
