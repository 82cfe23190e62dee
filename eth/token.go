package eth

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	commonutil "github.com/dan13ram/spaceship-staking/common"
	eth "github.com/dan13ram/spaceship-staking/eth/client"
)

// Token moves the ERC-20 staking token in and out of the custody account.
type Token struct {
	contract eth.TokenContract
	client   eth.EthereumClient
	signer   commonutil.Signer
	chainID  *big.Int
}

func (t *Token) TransferFrom(ctx context.Context, from common.Address, to common.Address, amount *big.Int) error {
	tx, err := t.contract.TransferFrom(NewTransactOpts(ctx, t.signer, t.chainID), from, to, amount)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"tx_hash": tx.Hash().Hex(), "from": from.Hex(), "amount": amount.String()}).Debug("[TOKEN] Sent transferFrom")

	_, err = t.client.WaitMined(ctx, tx)
	return err
}

func (t *Token) Transfer(ctx context.Context, to common.Address, amount *big.Int) error {
	tx, err := t.contract.Transfer(NewTransactOpts(ctx, t.signer, t.chainID), to, amount)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"tx_hash": tx.Hash().Hex(), "to": to.Hex(), "amount": amount.String()}).Debug("[TOKEN] Sent transfer")

	_, err = t.client.WaitMined(ctx, tx)
	return err
}

func (t *Token) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return t.contract.BalanceOf(&bind.CallOpts{Context: ctx}, account)
}

func NewToken(contract eth.TokenContract, client eth.EthereumClient, signer commonutil.Signer, chainID *big.Int) *Token {
	return &Token{
		contract: contract,
		client:   client,
		signer:   signer,
		chainID:  chainID,
	}
}
