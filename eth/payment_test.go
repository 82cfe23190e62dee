package eth

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eth "github.com/dan13ram/spaceship-staking/eth/client"
)

// a key for senderAddress
const senderPrivateKey = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"

func signedPayment(t *testing.T, value *big.Int) *types.Transaction {
	key, err := crypto.HexToECDSA(senderPrivateKey)
	require.NoError(t, err)
	tx, err := types.SignTx(newTestTx(custodyAddress, value), types.LatestSignerForChainID(testChainID), key)
	require.NoError(t, err)
	return tx
}

func TestNativePaymentVerifier(t *testing.T) {
	txHash := "0x01"

	t.Run("Verified", func(t *testing.T) {
		mockClient := eth.NewMockEthereumClient(t)
		verifier := NewNativePaymentVerifier(mockClient, custodyAddress, testChainID, 2)

		mockClient.EXPECT().GetTransactionByHash(txHash).Return(signedPayment(t, big.NewInt(5)), false, nil).Once()
		mockClient.EXPECT().GetTransactionReceipt(txHash).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(10)}, nil).Once()
		mockClient.EXPECT().GetBlockNumber().Return(uint64(12), nil).Once()

		amount, err := verifier.Verify(txHash, senderAddress)
		assert.NoError(t, err)
		assert.Equal(t, big.NewInt(5), amount)
	})

	t.Run("Not Enough Confirmations", func(t *testing.T) {
		mockClient := eth.NewMockEthereumClient(t)
		verifier := NewNativePaymentVerifier(mockClient, custodyAddress, testChainID, 2)

		mockClient.EXPECT().GetTransactionByHash(txHash).Return(signedPayment(t, big.NewInt(5)), false, nil).Once()
		mockClient.EXPECT().GetTransactionReceipt(txHash).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(10)}, nil).Once()
		mockClient.EXPECT().GetBlockNumber().Return(uint64(11), nil).Once()

		_, err := verifier.Verify(txHash, senderAddress)
		assert.ErrorIs(t, err, ErrPaymentPending)
	})

	t.Run("Pending", func(t *testing.T) {
		mockClient := eth.NewMockEthereumClient(t)
		verifier := NewNativePaymentVerifier(mockClient, custodyAddress, testChainID, 0)

		mockClient.EXPECT().GetTransactionByHash(txHash).Return(signedPayment(t, big.NewInt(5)), true, nil).Once()

		_, err := verifier.Verify(txHash, senderAddress)
		assert.ErrorIs(t, err, ErrPaymentPending)
	})

	t.Run("Wrong Recipient", func(t *testing.T) {
		mockClient := eth.NewMockEthereumClient(t)
		verifier := NewNativePaymentVerifier(mockClient, tokenAddress, testChainID, 0)

		mockClient.EXPECT().GetTransactionByHash(txHash).Return(signedPayment(t, big.NewInt(5)), false, nil).Once()

		_, err := verifier.Verify(txHash, senderAddress)
		assert.ErrorIs(t, err, ErrPaymentRecipient)
	})

	t.Run("Wrong Sender", func(t *testing.T) {
		mockClient := eth.NewMockEthereumClient(t)
		verifier := NewNativePaymentVerifier(mockClient, custodyAddress, testChainID, 0)

		mockClient.EXPECT().GetTransactionByHash(txHash).Return(signedPayment(t, big.NewInt(5)), false, nil).Once()

		_, err := verifier.Verify(txHash, custodyAddress)
		assert.ErrorIs(t, err, ErrPaymentSender)
	})

	t.Run("Failed", func(t *testing.T) {
		mockClient := eth.NewMockEthereumClient(t)
		verifier := NewNativePaymentVerifier(mockClient, custodyAddress, testChainID, 0)

		mockClient.EXPECT().GetTransactionByHash(txHash).Return(signedPayment(t, big.NewInt(5)), false, nil).Once()
		mockClient.EXPECT().GetTransactionReceipt(txHash).Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil).Once()

		_, err := verifier.Verify(txHash, senderAddress)
		assert.ErrorIs(t, err, ErrPaymentFailed)
	})

	t.Run("Lookup Error", func(t *testing.T) {
		mockClient := eth.NewMockEthereumClient(t)
		verifier := NewNativePaymentVerifier(mockClient, custodyAddress, testChainID, 0)
		errNotFound := errors.New("not found")

		mockClient.EXPECT().GetTransactionByHash(txHash).Return(nil, false, errNotFound).Once()

		_, err := verifier.Verify(txHash, senderAddress)
		assert.ErrorIs(t, err, errNotFound)
	})
}
