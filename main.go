package main

import (
	"flag"
	"math/big"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/spaceship-staking/app"
	"github.com/dan13ram/spaceship-staking/eth"
	ethclient "github.com/dan13ram/spaceship-staking/eth/client"
	"github.com/dan13ram/spaceship-staking/ledger"
	"github.com/dan13ram/spaceship-staking/models"
)

func main() {

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	var configPath string
	var envPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&envPath, "env", "", "path to env file")
	flag.Parse()

	var absConfigPath string
	var absEnvPath string
	if configPath != "" {
		absConfigPath, _ = filepath.Abs(configPath)
	}
	if envPath != "" {
		absEnvPath, _ = filepath.Abs(envPath)
	}

	app.InitConfig(absConfigPath, absEnvPath)
	app.InitLogger()
	app.InitDB()

	signer, err := app.CreateCustodySigner()
	if err != nil {
		log.Fatal("[MAIN] Error creating custody signer: ", err)
	}
	custody := signer.EthAddress()
	log.Info("[MAIN] Custody address: ", custody.Hex())

	ethclient.Client.ValidateNetwork()

	chainID, ok := new(big.Int).SetString(app.Config.Ethereum.ChainID, 10)
	if !ok {
		log.Fatal("[MAIN] Invalid chain id: ", app.Config.Ethereum.ChainID)
	}

	backend := ethclient.Client.GetClient()
	token := eth.NewToken(
		ethclient.NewTokenContract(common.HexToAddress(app.Config.Ethereum.TokenAddress), backend),
		ethclient.Client,
		signer,
		chainID,
	)

	admins, err := ledger.NewAdminList(app.Config.Ledger.AdminAddresses)
	if err != nil {
		log.Fatal("[MAIN] Error loading admin list: ", err)
	}

	opts := []ledger.Option{
		ledger.WithLocker(ledger.NewDatabaseLocker(app.DB, time.Duration(app.Config.MongoDB.LockTTLSecs)*time.Second)),
		ledger.WithEventSink(ledger.MultiEventSink{ledger.LogEventSink{}, ledger.NewDatabaseEventSink(app.DB)}),
		ledger.WithMaxCollectiblesPerLaunch(app.Config.Ledger.MaxCollectiblesPerLaunch),
	}
	if app.Config.Ethereum.CollectibleAddress != "" {
		collectible := eth.NewCollectible(
			ethclient.NewCollectibleContract(common.HexToAddress(app.Config.Ethereum.CollectibleAddress), backend),
			ethclient.Client,
			signer,
			chainID,
		)
		opts = append(opts, ledger.WithCollectibleMinter(collectible))
	} else {
		log.Warn("[MAIN] No collectible address configured, token claims are disabled")
	}

	l := ledger.New(ledger.NewMongoStore(app.DB), admins, token, custody, opts...)

	confirmations := app.Config.Ethereum.Confirmations
	if confirmations < 0 {
		confirmations = 0
	}
	payments := eth.NewNativePaymentVerifier(ethclient.Client, custody, chainID, uint64(confirmations))

	healthcheck := app.NewHealthCheck(custody.Hex())

	serviceHealthMap := make(map[string]models.ServiceHealth)
	if lastHealth, err := healthcheck.FindLastHealth(); err == nil {
		for _, serviceHealth := range lastHealth.ServiceHealths {
			serviceHealthMap[serviceHealth.Name] = serviceHealth
		}
	}

	serviceFactories := GetServiceFactories(ServiceDeps{
		Client:   ethclient.Client,
		Custody:  custody,
		Ledger:   l,
		Payments: payments,
	})

	var wg sync.WaitGroup

	var services []app.Service
	for serviceName, factory := range serviceFactories {
		services = append(services, CreateService(&wg, serviceName, serviceHealthMap, factory))
	}

	healthService := app.NewHealthService(healthcheck, &wg)
	services = append(services, healthService)
	healthcheck.SetServices(services)

	wg.Add(len(services))

	for _, service := range services {
		go service.Start()
	}

	log.Info("[MAIN] Server started")

	gracefulStop := make(chan os.Signal, 1)
	done := make(chan bool, 1)
	signal.Notify(gracefulStop, syscall.SIGINT, syscall.SIGTERM)
	go waitForExitSignals(gracefulStop, done)
	<-done

	log.Debug("[MAIN] Stopping server gracefully")

	for _, service := range services {
		service.Stop()
	}

	wg.Wait()

	app.DB.Disconnect()
	signer.Destroy()
	log.Info("[MAIN] Server stopped")
}

func waitForExitSignals(gracefulStop chan os.Signal, done chan bool) {
	sig := <-gracefulStop
	log.Debug("[MAIN] Caught signal: ", sig)
	done <- true
}
