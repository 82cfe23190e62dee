package eth

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	commonutil "github.com/dan13ram/spaceship-staking/common"
)

// NewTransactOpts returns transact options that sign with the custody signer.
func NewTransactOpts(ctx context.Context, signer commonutil.Signer, chainID *big.Int) *bind.TransactOpts {
	txSigner := types.LatestSignerForChainID(chainID)
	from := signer.EthAddress()

	return &bind.TransactOpts{
		From:    from,
		Context: ctx,
		Signer: func(address common.Address, tx *types.Transaction) (*types.Transaction, error) {
			if address != from {
				return nil, bind.ErrNotAuthorized
			}
			signature, err := signer.EthSign(txSigner.Hash(tx).Bytes())
			if err != nil {
				return nil, err
			}
			if signature[64] >= 27 {
				signature[64] -= 27
			}
			return tx.WithSignature(txSigner, signature)
		},
	}
}
