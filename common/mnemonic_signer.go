package common

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Struct Definition
type PrivateKeySigner struct {
	ethAddress common.Address
	ethPrivKey *ecdsa.PrivateKey
}

var _ Signer = &PrivateKeySigner{}

// Constructor Functions
func NewMnemonicSigner(mnemonic string, hdPath string) (*PrivateKeySigner, error) {
	ethPrivKey, err := EthereumPrivateKeyFromMnemonic(mnemonic, hdPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create ethereum private key: %w", err)
	}
	return newPrivateKeySigner(ethPrivKey), nil
}

func NewPrivateKeySigner(hexKey string) (*PrivateKeySigner, error) {
	ethPrivKey, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ethereum private key: %w", err)
	}
	return newPrivateKeySigner(ethPrivKey), nil
}

func newPrivateKeySigner(ethPrivKey *ecdsa.PrivateKey) *PrivateKeySigner {
	publicKeyECDSA, _ := ethPrivKey.Public().(*ecdsa.PublicKey) // impossible to get an error since the private key is not nil

	return &PrivateKeySigner{
		ethPrivKey: ethPrivKey,
		ethAddress: crypto.PubkeyToAddress(*publicKeyECDSA),
	}
}

// Destructor Function
func (s *PrivateKeySigner) Destroy() {
	// nothing to do
}

// Method Implementations
func (s *PrivateKeySigner) EthSign(data []byte) ([]byte, error) {
	digest := data
	if len(digest) != 32 {
		digest = crypto.Keccak256(data)
	}
	hash := common.BytesToHash(digest)
	signature, err := crypto.Sign(hash[:], s.ethPrivKey)
	if err != nil {
		return nil, err
	}

	if signature[64] == 0 || signature[64] == 1 {
		signature[64] += 27
	}

	return signature, nil
}

func (s *PrivateKeySigner) EthAddress() common.Address {
	return s.ethAddress
}
