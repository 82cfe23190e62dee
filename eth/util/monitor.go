package util

import (
	"time"

	eth "github.com/dan13ram/spaceship-staking/eth/client"
	"github.com/dan13ram/spaceship-staking/models"
)

func CreatePoolDeposit(event *eth.TokenTransfer) models.PoolDeposit {
	doc := models.PoolDeposit{
		TransactionHash: event.Raw.TxHash.String(),
		LogIndex:        uint64(event.Raw.Index),
		BlockNumber:     event.Raw.BlockNumber,
		TokenAddress:    event.Raw.Address.String(),
		SenderAddress:   event.From.String(),
		Amount:          event.Value.String(),
		CreatedAt:       time.Now(),
	}
	return doc
}
