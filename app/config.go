package app

import (
	"os"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/dan13ram/spaceship-staking/common"
	"github.com/dan13ram/spaceship-staking/models"
)

var (
	Config models.Config
)

func readConfigFromConfigFile(configFile string) bool {
	if configFile == "" {
		log.Debug("[CONFIG] No config file provided")
		return false
	}

	log.Debug("[CONFIG] Reading config file ", configFile)
	var yamlFile, err = os.ReadFile(configFile)
	if err != nil {
		log.Fatalf("[CONFIG] Error reading config file %q: %s\n", configFile, err.Error())
	}

	err = yaml.Unmarshal(yamlFile, &Config)
	if err != nil {
		log.Fatalf("[CONFIG] Error unmarshalling config file %q: %s\n", configFile, err.Error())
	}

	log.Debug("[CONFIG] Config loaded from file")
	return true
}

func setConfigDefaults() {
	if Config.MongoDB.TimeoutMillis == 0 {
		Config.MongoDB.TimeoutMillis = 2000
	}
	if Config.MongoDB.LockTTLSecs == 0 {
		Config.MongoDB.LockTTLSecs = 60
	}
	if Config.Ethereum.RPCTimeoutMillis == 0 {
		Config.Ethereum.RPCTimeoutMillis = 5000
	}
	if Config.Custody.HDPath == "" {
		Config.Custody.HDPath = common.DefaultETHHDPath
	}
	if Config.HealthCheck.InstanceID == "" {
		Config.HealthCheck.InstanceID = uuid.NewString()
	}
	if Config.HealthCheck.IntervalMillis == 0 {
		Config.HealthCheck.IntervalMillis = 60000
	}
	if Config.Ledger.MaxCollectiblesPerLaunch == 0 {
		Config.Ledger.MaxCollectiblesPerLaunch = common.DefaultMaxCollectiblesPerLaunch
	}
	if Config.API.ListenAddress == "" {
		Config.API.ListenAddress = ":8080"
	}
	if Config.API.SignatureMaxAgeSec == 0 {
		Config.API.SignatureMaxAgeSec = 300
	}
}

func validateConfig() {
	log.Debug("[CONFIG] Validating config")

	if Config.MongoDB.URI == "" {
		log.Fatal("[CONFIG] MongoDB.URI is required")
	}
	if Config.MongoDB.Database == "" {
		log.Fatal("[CONFIG] MongoDB.Database is required")
	}

	if Config.Ethereum.RPCURL == "" {
		log.Fatal("[CONFIG] Ethereum.RPCURL is required")
	}
	if Config.Ethereum.ChainID == "" {
		log.Fatal("[CONFIG] Ethereum.ChainID is required")
	}
	if !common.IsValidEthereumAddress(Config.Ethereum.TokenAddress) {
		log.Fatal("[CONFIG] Ethereum.TokenAddress is invalid")
	}
	if Config.Ethereum.CollectibleAddress != "" && !common.IsValidEthereumAddress(Config.Ethereum.CollectibleAddress) {
		log.Fatal("[CONFIG] Ethereum.CollectibleAddress is invalid")
	}

	if Config.Custody.PrivateKey == "" && Config.Custody.Mnemonic == "" && Config.Custody.GcpKmsKeyName == "" {
		log.Fatal("[CONFIG] Custody.PrivateKey, Custody.Mnemonic or Custody.GcpKmsKeyName is required")
	}

	if len(Config.Ledger.AdminAddresses) == 0 {
		log.Fatal("[CONFIG] Ledger.AdminAddresses is required")
	}
	for i, address := range Config.Ledger.AdminAddresses {
		address = strings.TrimSpace(address)
		if !common.IsValidEthereumAddress(address) {
			log.Fatalf("[CONFIG] Ledger.AdminAddresses[%d] is invalid", i)
		}
		Config.Ledger.AdminAddresses[i] = address
	}

	if Config.PoolMonitor.Enabled && Config.PoolMonitor.IntervalMillis <= 0 {
		log.Fatal("[CONFIG] PoolMonitor.IntervalMillis is required")
	}

	log.Debug("[CONFIG] Config validated")
}

func InitConfig(configFile string, envFile string) {
	log.Debug("[CONFIG] Initializing config")

	readConfigFromConfigFile(configFile)
	readConfigFromENV(envFile)
	readKeysFromGSM()
	setConfigDefaults()
	validateConfig()

	log.Info("[CONFIG] Config initialized")
}
