package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionPoolDeposits = "pool_deposits"
)

// PoolDeposit is an ERC-20 transfer into the custody account observed on chain.
type PoolDeposit struct {
	Id              *primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	TransactionHash string              `bson:"transaction_hash" json:"transaction_hash"`
	LogIndex        uint64              `bson:"log_index" json:"log_index"`
	BlockNumber     uint64              `bson:"block_number" json:"block_number"`
	TokenAddress    string              `bson:"token_address" json:"token_address"`
	SenderAddress   string              `bson:"sender_address" json:"sender_address"`
	Amount          string              `bson:"amount" json:"amount"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
}
