package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionMissions = "missions"
)

type MissionMetadata struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	ResourceURI string `bson:"resource_uri" json:"resource_uri"`
}

// Mission is a time boxed staking campaign. Only Enabled changes after creation.
type Mission struct {
	Id              *primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	MissionID       uint64              `bson:"mission_id" json:"mission_id"`
	StartTime       time.Time           `bson:"start_time" json:"start_time"`
	LaunchDeadline  time.Time           `bson:"launch_deadline" json:"launch_deadline"`
	ClaimDelay      time.Duration       `bson:"claim_delay" json:"claim_delay"`
	RewardPerShip   string              `bson:"reward_per_ship" json:"reward_per_ship"`
	CostPerShip     string              `bson:"cost_per_ship" json:"cost_per_ship"`
	BoostThresholds []string            `bson:"boost_thresholds" json:"boost_thresholds"`
	Enabled         bool                `bson:"enabled" json:"enabled"`
	Metadata        MissionMetadata     `bson:"metadata" json:"metadata"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updated_at"`
}

// ClaimOpensAt is the first instant at which launches of this mission may be settled.
func (m *Mission) ClaimOpensAt() time.Time {
	return m.LaunchDeadline.Add(m.ClaimDelay)
}
