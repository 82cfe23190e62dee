package eth

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	log "github.com/sirupsen/logrus"

	eth "github.com/dan13ram/spaceship-staking/eth/client"
)

var (
	ErrPaymentPending   = errors.New("payment is not confirmed yet")
	ErrPaymentFailed    = errors.New("payment transaction failed")
	ErrPaymentRecipient = errors.New("payment was not sent to custody")
	ErrPaymentSender    = errors.New("payment was not sent by caller")
)

// NativePaymentVerifier resolves a native currency transfer to custody into the amount paid.
type NativePaymentVerifier struct {
	client        eth.EthereumClient
	custody       common.Address
	chainID       *big.Int
	confirmations uint64
}

// Verify returns the value of txHash after checking it was sent by sender to custody and is confirmed.
func (v *NativePaymentVerifier) Verify(txHash string, sender common.Address) (*big.Int, error) {
	logger := log.WithField("tx_hash", txHash)

	tx, isPending, err := v.client.GetTransactionByHash(txHash)
	if err != nil {
		return nil, fmt.Errorf("could not fetch payment transaction: %w", err)
	}
	if isPending {
		return nil, ErrPaymentPending
	}
	if tx.To() == nil || *tx.To() != v.custody {
		return nil, ErrPaymentRecipient
	}

	from, err := types.Sender(types.LatestSignerForChainID(v.chainID), tx)
	if err != nil {
		return nil, fmt.Errorf("could not recover payment sender: %w", err)
	}
	if from != sender {
		logger.WithField("from", from.Hex()).Debug("[PAYMENT] Payment sender mismatch")
		return nil, ErrPaymentSender
	}

	receipt, err := v.client.GetTransactionReceipt(txHash)
	if err != nil {
		return nil, fmt.Errorf("could not fetch payment receipt: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, ErrPaymentFailed
	}

	if v.confirmations > 0 {
		blockNumber, err := v.client.GetBlockNumber()
		if err != nil {
			return nil, fmt.Errorf("could not fetch block number: %w", err)
		}
		if receipt.BlockNumber == nil || receipt.BlockNumber.Uint64()+v.confirmations > blockNumber {
			return nil, ErrPaymentPending
		}
	}

	logger.WithField("amount", tx.Value().String()).Debug("[PAYMENT] Verified payment")
	return tx.Value(), nil
}

func NewNativePaymentVerifier(client eth.EthereumClient, custody common.Address, chainID *big.Int, confirmations uint64) *NativePaymentVerifier {
	return &NativePaymentVerifier{
		client:        client,
		custody:       custody,
		chainID:       chainID,
		confirmations: confirmations,
	}
}
