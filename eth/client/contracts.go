package client

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const TokenABI = `[
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"transferFrom","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]}
]`

const CollectibleABI = `[
	{"type":"function","name":"isMinter","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"mint","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"tokenId","type":"uint256","indexed":true}]}
]`

var (
	tokenABI       = mustParseABI(TokenABI)
	collectibleABI = mustParseABI(CollectibleABI)

	// TransferEventTopic is shared by ERC-20 and ERC-721 Transfer events.
	TransferEventTopic = tokenABI.Events["Transfer"].ID
)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(err)
	}
	return parsed
}

type TokenTransfer struct {
	From  common.Address
	To    common.Address
	Value *big.Int
	Raw   types.Log
}

type CollectibleTransfer struct {
	From    common.Address
	To      common.Address
	TokenId *big.Int
	Raw     types.Log
}

type TokenContract interface {
	Address() common.Address
	BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error)
	Transfer(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error)
	TransferFrom(opts *bind.TransactOpts, from common.Address, to common.Address, amount *big.Int) (*types.Transaction, error)
	ParseTransfer(log types.Log) (*TokenTransfer, error)
}

type CollectibleContract interface {
	Address() common.Address
	IsMinter(opts *bind.CallOpts, account common.Address) (bool, error)
	Mint(opts *bind.TransactOpts, to common.Address) (*types.Transaction, error)
	ParseTransfer(log types.Log) (*CollectibleTransfer, error)
}

type TokenContractImpl struct {
	address  common.Address
	contract *bind.BoundContract
}

func (x *TokenContractImpl) Address() common.Address {
	return x.address
}

func (x *TokenContractImpl) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	var out []interface{}
	err := x.contract.Call(opts, &out, "balanceOf", account)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (x *TokenContractImpl) Transfer(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	return x.contract.Transact(opts, "transfer", to, amount)
}

func (x *TokenContractImpl) TransferFrom(opts *bind.TransactOpts, from common.Address, to common.Address, amount *big.Int) (*types.Transaction, error) {
	return x.contract.Transact(opts, "transferFrom", from, to, amount)
}

func (x *TokenContractImpl) ParseTransfer(log types.Log) (*TokenTransfer, error) {
	event := new(TokenTransfer)
	if err := x.contract.UnpackLog(event, "Transfer", log); err != nil {
		return nil, err
	}
	event.Raw = log
	return event, nil
}

func NewTokenContract(address common.Address, backend bind.ContractBackend) TokenContract {
	return &TokenContractImpl{
		address:  address,
		contract: bind.NewBoundContract(address, tokenABI, backend, backend, backend),
	}
}

type CollectibleContractImpl struct {
	address  common.Address
	contract *bind.BoundContract
}

func (x *CollectibleContractImpl) Address() common.Address {
	return x.address
}

func (x *CollectibleContractImpl) IsMinter(opts *bind.CallOpts, account common.Address) (bool, error) {
	var out []interface{}
	err := x.contract.Call(opts, &out, "isMinter", account)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (x *CollectibleContractImpl) Mint(opts *bind.TransactOpts, to common.Address) (*types.Transaction, error) {
	return x.contract.Transact(opts, "mint", to)
}

func (x *CollectibleContractImpl) ParseTransfer(log types.Log) (*CollectibleTransfer, error) {
	event := new(CollectibleTransfer)
	if err := x.contract.UnpackLog(event, "Transfer", log); err != nil {
		return nil, err
	}
	event.Raw = log
	return event, nil
}

func NewCollectibleContract(address common.Address, backend bind.ContractBackend) CollectibleContract {
	return &CollectibleContractImpl{
		address:  address,
		contract: bind.NewBoundContract(address, collectibleABI, backend, backend, backend),
	}
}
