package eth

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	commonutil "github.com/dan13ram/spaceship-staking/common"
	eth "github.com/dan13ram/spaceship-staking/eth/client"
)

var ErrMintEventNotFound = errors.New("mint receipt has no transfer event")

// Collectible mints ERC-721 collectibles from the custody account.
type Collectible struct {
	contract eth.CollectibleContract
	client   eth.EthereumClient
	signer   commonutil.Signer
	chainID  *big.Int
}

func (c *Collectible) IsMinter(ctx context.Context, account common.Address) (bool, error) {
	return c.contract.IsMinter(&bind.CallOpts{Context: ctx}, account)
}

// Mint mints one collectible to recipient and returns its token id, read from the mint's Transfer event.
func (c *Collectible) Mint(ctx context.Context, recipient common.Address) (*big.Int, error) {
	tx, err := c.contract.Mint(NewTransactOpts(ctx, c.signer, c.chainID), recipient)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"tx_hash": tx.Hash().Hex(), "recipient": recipient.Hex()}).Debug("[COLLECTIBLE] Sent mint")

	receipt, err := c.client.WaitMined(ctx, tx)
	if err != nil {
		return nil, err
	}

	for _, l := range receipt.Logs {
		if l == nil || l.Address != c.contract.Address() || len(l.Topics) == 0 || l.Topics[0] != eth.TransferEventTopic {
			continue
		}
		event, err := c.contract.ParseTransfer(*l)
		if err != nil {
			log.WithError(err).Warn("[COLLECTIBLE] Error parsing transfer event")
			continue
		}
		if event.From == (common.Address{}) && event.To == recipient {
			return event.TokenId, nil
		}
	}

	return nil, ErrMintEventNotFound
}

func NewCollectible(contract eth.CollectibleContract, client eth.EthereumClient, signer commonutil.Signer, chainID *big.Int) *Collectible {
	return &Collectible{
		contract: contract,
		client:   client,
		signer:   signer,
		chainID:  chainID,
	}
}
