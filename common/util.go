package common

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/cosmos/go-bip39"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
)

func Ensure0xPrefix(str string) string {
	if strings.HasPrefix(str, "0x") || strings.HasPrefix(str, "0X") {
		return "0x" + str[2:]
	}
	return "0x" + str
}

func IsValidEthereumAddress(address string) bool {
	if !strings.HasPrefix(address, "0x") {
		return false
	}
	return common.IsHexAddress(address)
}

// ParseAmount parses a non-negative decimal or 0x-prefixed amount of at most 256 bits
func ParseAmount(value string) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("empty amount")
	}
	amount, ok := math.ParseBig256(value)
	if !ok || amount.Sign() < 0 {
		return nil, fmt.Errorf("invalid amount: %q", value)
	}
	return amount, nil
}

// ParseAmounts parses every value with ParseAmount
func ParseAmounts(values []string) ([]*big.Int, error) {
	amounts := make([]*big.Int, len(values))
	for i, value := range values {
		amount, err := ParseAmount(value)
		if err != nil {
			return nil, err
		}
		amounts[i] = amount
	}
	return amounts, nil
}

func FormatAmounts(amounts []*big.Int) []string {
	values := make([]string, len(amounts))
	for i, amount := range amounts {
		values[i] = amount.String()
	}
	return values
}

func EthereumPrivateKeyFromMnemonic(mnemonic string, hdPath string) (*ecdsa.PrivateKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}

	if hdPath == "" {
		hdPath = DefaultETHHDPath
	}

	path, err := hdwallet.ParseDerivationPath(hdPath)
	if err != nil {
		return nil, fmt.Errorf("invalid hd path: %w", err)
	}

	wallet, err := hdwallet.NewFromMnemonic(mnemonic, DefaultBIP39Passphrase)
	if err != nil {
		return nil, err
	}

	account, err := wallet.Derive(path, false)
	if err != nil {
		return nil, err
	}

	return wallet.PrivateKey(account)
}
