package common

import (
	"github.com/ethereum/go-ethereum/common"
)

// Signer signs on behalf of the custody account
type Signer interface {
	EthSign(data []byte) ([]byte, error)
	EthAddress() common.Address
	Destroy()
}
