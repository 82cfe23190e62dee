package eth

import (
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dan13ram/spaceship-staking/app"
	eth "github.com/dan13ram/spaceship-staking/eth/client"
	"github.com/dan13ram/spaceship-staking/eth/util"
	"github.com/dan13ram/spaceship-staking/models"
)

const (
	RewardPoolMonitorName = "POOL MONITOR"
)

// RewardPoolMonitorRunner records every staking token transfer into custody as a pool deposit.
type RewardPoolMonitorRunner struct {
	startBlockNumber   int64
	currentBlockNumber int64
	confirmations      int64
	custody            common.Address
	tokenContract      eth.TokenContract
	client             eth.EthereumClient
}

func (x *RewardPoolMonitorRunner) Run() {
	x.UpdateCurrentBlockNumber()
	x.SyncTxs()
}

func (x *RewardPoolMonitorRunner) Status() models.RunnerStatus {
	return models.RunnerStatus{
		EthBlockNumber: strconv.FormatInt(x.startBlockNumber, 10),
	}
}

func (x *RewardPoolMonitorRunner) UpdateCurrentBlockNumber() {
	res, err := x.client.GetBlockNumber()
	if err != nil {
		log.Error("[POOL MONITOR] Error getting current block number: ", err)
		return
	}
	x.currentBlockNumber = int64(res) - x.confirmations
	log.Info("[POOL MONITOR] Current block number: ", x.currentBlockNumber)
}

func (x *RewardPoolMonitorRunner) HandleDepositEvent(event *eth.TokenTransfer) bool {
	if event == nil {
		log.Error("[POOL MONITOR] Invalid deposit event")
		return false
	}

	doc := util.CreatePoolDeposit(event)

	// each event is a combination of transaction hash and log index
	log.Debug("[POOL MONITOR] Handling deposit event: ", event.Raw.TxHash, " ", event.Raw.Index)

	err := app.DB.InsertOne(models.CollectionPoolDeposits, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Info("[POOL MONITOR] Found duplicate deposit event: ", event.Raw.TxHash, " ", event.Raw.Index)
			return true
		}
		log.Error("[POOL MONITOR] Error while storing deposit event in db: ", err)
		return false
	}

	log.Info("[POOL MONITOR] Stored deposit event: ", event.Raw.TxHash, " ", event.Raw.Index)
	return true
}

func (x *RewardPoolMonitorRunner) SyncBlocks(startBlockNumber uint64, endBlockNumber uint64) bool {
	logs, err := x.client.FilterLogs(ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(startBlockNumber),
		ToBlock:   new(big.Int).SetUint64(endBlockNumber),
		Addresses: []common.Address{x.tokenContract.Address()},
		Topics:    [][]common.Hash{{eth.TransferEventTopic}, nil, {common.BytesToHash(x.custody.Bytes())}},
	})
	if err != nil {
		log.Error("[POOL MONITOR] Error while syncing deposit events: ", err)
		return false
	}

	var success bool = true
	for _, l := range logs {
		event, err := x.tokenContract.ParseTransfer(l)
		if err != nil {
			log.Error("[POOL MONITOR] Error parsing deposit event: ", err)
			success = false
			continue
		}
		success = x.HandleDepositEvent(event) && success
	}
	return success
}

func (x *RewardPoolMonitorRunner) SyncTxs() bool {
	if x.currentBlockNumber <= x.startBlockNumber {
		log.Info("[POOL MONITOR] No new blocks to sync")
		return true
	}

	var success bool = true
	if (x.currentBlockNumber - x.startBlockNumber) > eth.MAX_QUERY_BLOCKS {
		log.Debug("[POOL MONITOR] Syncing deposits in chunks")
		for i := x.startBlockNumber; i < x.currentBlockNumber; i += eth.MAX_QUERY_BLOCKS {
			endBlockNumber := i + eth.MAX_QUERY_BLOCKS
			if endBlockNumber > x.currentBlockNumber {
				endBlockNumber = x.currentBlockNumber
			}
			log.Info("[POOL MONITOR] Syncing deposits from blockNumber: ", i, " to blockNumber: ", endBlockNumber)
			success = x.SyncBlocks(uint64(i), uint64(endBlockNumber)) && success
		}
	} else {
		log.Info("[POOL MONITOR] Syncing deposits from blockNumber: ", x.startBlockNumber, " to blockNumber: ", x.currentBlockNumber)
		success = x.SyncBlocks(uint64(x.startBlockNumber), uint64(x.currentBlockNumber)) && success
	}

	if success {
		x.startBlockNumber = x.currentBlockNumber
	}

	return success
}

func (x *RewardPoolMonitorRunner) InitStartBlockNumber(startBlockNumber int64) {
	if startBlockNumber > 0 {
		x.startBlockNumber = startBlockNumber
	} else {
		log.Warn("[POOL MONITOR] Found invalid start block number, updating to current block number")
		x.startBlockNumber = x.currentBlockNumber
	}

	log.Info("[POOL MONITOR] Start block number: ", x.startBlockNumber)
}

func NewRewardPoolMonitor(wg *sync.WaitGroup, client eth.EthereumClient, custody common.Address, lastHealth models.ServiceHealth) app.Service {
	if !app.Config.PoolMonitor.Enabled {
		log.Debug("[POOL MONITOR] Pool monitor disabled")
		return app.NewEmptyService(wg)
	}

	log.Debug("[POOL MONITOR] Initializing pool monitor")

	x := &RewardPoolMonitorRunner{
		confirmations: app.Config.Ethereum.Confirmations,
		custody:       custody,
		tokenContract: eth.NewTokenContract(common.HexToAddress(app.Config.Ethereum.TokenAddress), client.GetClient()),
		client:        client,
	}

	x.UpdateCurrentBlockNumber()

	startBlockNumber := app.Config.Ethereum.StartBlockNumber
	if lastBlockNumber, err := strconv.ParseInt(lastHealth.EthBlockNumber, 10, 64); err == nil {
		startBlockNumber = lastBlockNumber
	}
	x.InitStartBlockNumber(startBlockNumber)

	log.Info("[POOL MONITOR] Initialized pool monitor")

	return app.NewRunnerService(RewardPoolMonitorName, x, wg, time.Duration(app.Config.PoolMonitor.IntervalMillis)*time.Millisecond)
}
