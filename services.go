package main

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dan13ram/spaceship-staking/api"
	"github.com/dan13ram/spaceship-staking/app"
	"github.com/dan13ram/spaceship-staking/eth"
	ethclient "github.com/dan13ram/spaceship-staking/eth/client"
	"github.com/dan13ram/spaceship-staking/models"
)

type ServiceFactory func(wg *sync.WaitGroup, lastHealth models.ServiceHealth) app.Service

// ServiceDeps are the collaborators shared by the long running services.
type ServiceDeps struct {
	Client   ethclient.EthereumClient
	Custody  common.Address
	Ledger   api.Ledger
	Payments api.PaymentVerifier
}

func CreateService(
	wg *sync.WaitGroup,
	serviceName string,
	serviceHealthMap map[string]models.ServiceHealth,
	factory ServiceFactory,
) app.Service {
	return factory(wg, serviceHealthMap[serviceName])
}

func GetServiceFactories(deps ServiceDeps) map[string]ServiceFactory {
	services := map[string]ServiceFactory{
		eth.RewardPoolMonitorName: func(wg *sync.WaitGroup, lastHealth models.ServiceHealth) app.Service {
			return eth.NewRewardPoolMonitor(wg, deps.Client, deps.Custody, lastHealth)
		},
		api.APIServiceName: func(wg *sync.WaitGroup, _ models.ServiceHealth) app.Service {
			return api.NewServer(wg, deps.Ledger, deps.Payments)
		},
	}

	return services
}
