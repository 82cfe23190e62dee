package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionEvents = "events"
)

type EventName string

const (
	EventMissionAdded   EventName = "MissionAdded"
	EventMissionStarted EventName = "MissionStarted"
	EventRewardClaimed  EventName = "RewardClaimed"
)

// Event payload field names are part of the public contract.
type Event struct {
	Id        *primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Name      EventName           `bson:"name" json:"name"`
	MissionID uint64              `bson:"mission_id" json:"missionId"`
	User      string              `bson:"user,omitempty" json:"user,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}
