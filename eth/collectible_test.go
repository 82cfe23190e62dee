package eth

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	eth "github.com/dan13ram/spaceship-staking/eth/client"
)

var collectibleAddress = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")

func mintLog(to common.Address, tokenId int64) *types.Log {
	return &types.Log{
		Address: collectibleAddress,
		Topics: []common.Hash{
			eth.TransferEventTopic,
			{},
			common.BytesToHash(to.Bytes()),
			common.BigToHash(big.NewInt(tokenId)),
		},
	}
}

func TestCollectibleIsMinter(t *testing.T) {
	mockContract := eth.NewMockCollectibleContract(t)
	collectible := NewCollectible(mockContract, eth.NewMockEthereumClient(t), newTestSigner(t), testChainID)
	ctx := context.Background()

	mockContract.EXPECT().IsMinter(&bind.CallOpts{Context: ctx}, custodyAddress).Return(true, nil).Once()

	allowed, err := collectible.IsMinter(ctx, custodyAddress)
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestCollectibleMint(t *testing.T) {
	parser := eth.NewCollectibleContract(collectibleAddress, nil)

	t.Run("Token Id From Event", func(t *testing.T) {
		mockContract := eth.NewMockCollectibleContract(t)
		mockClient := eth.NewMockEthereumClient(t)
		collectible := NewCollectible(mockContract, mockClient, newTestSigner(t), testChainID)
		tx := newTestTx(collectibleAddress, big.NewInt(0))

		receipt := &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs: []*types.Log{
				{Address: tokenAddress, Topics: []common.Hash{eth.TransferEventTopic}},
				mintLog(custodyAddress, 6),
				mintLog(senderAddress, 7),
			},
		}

		mockContract.EXPECT().Address().Return(collectibleAddress)
		mockContract.EXPECT().ParseTransfer(mock.Anything).RunAndReturn(parser.ParseTransfer)
		mockContract.EXPECT().Mint(mock.Anything, senderAddress).Return(tx, nil).Once()
		mockClient.EXPECT().WaitMined(mock.Anything, tx).Return(receipt, nil).Once()

		tokenId, err := collectible.Mint(context.Background(), senderAddress)
		assert.NoError(t, err)
		assert.Equal(t, big.NewInt(7), tokenId)
	})

	t.Run("No Event", func(t *testing.T) {
		mockContract := eth.NewMockCollectibleContract(t)
		mockClient := eth.NewMockEthereumClient(t)
		collectible := NewCollectible(mockContract, mockClient, newTestSigner(t), testChainID)
		tx := newTestTx(collectibleAddress, big.NewInt(0))

		mockContract.EXPECT().Mint(mock.Anything, senderAddress).Return(tx, nil).Once()
		mockClient.EXPECT().WaitMined(mock.Anything, tx).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil).Once()

		_, err := collectible.Mint(context.Background(), senderAddress)
		assert.ErrorIs(t, err, ErrMintEventNotFound)
	})

	t.Run("Send Fails", func(t *testing.T) {
		mockContract := eth.NewMockCollectibleContract(t)
		mockClient := eth.NewMockEthereumClient(t)
		collectible := NewCollectible(mockContract, mockClient, newTestSigner(t), testChainID)
		errRole := errors.New("execution reverted: caller is not a minter")

		mockContract.EXPECT().Mint(mock.Anything, senderAddress).Return(nil, errRole).Once()

		_, err := collectible.Mint(context.Background(), senderAddress)
		assert.ErrorIs(t, err, errRole)
	})
}
