package app

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func readInt64FromENV(key string, target *int64) bool {
	value := os.Getenv(key)
	if value == "" {
		return false
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Warn("[ENV] Error parsing ", key, ": ", err.Error())
		return false
	}
	*target = parsed
	return true
}

func readBoolFromENV(key string, target *bool) {
	value := os.Getenv(key)
	if value == "" {
		return
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn("[ENV] Error parsing ", key, ": ", err.Error())
		return
	}
	*target = parsed
}

func readStringFromENV(key string, target *string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func readConfigFromENV(envFile string) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil {
			log.Warn("[ENV] Error loading .env file: ", err.Error())
		}
	}

	// mongodb
	readStringFromENV("MONGODB_URI", &Config.MongoDB.URI)
	readStringFromENV("MONGODB_DATABASE", &Config.MongoDB.Database)
	readInt64FromENV("MONGODB_TIMEOUT_MS", &Config.MongoDB.TimeoutMillis)

	// ethereum
	readStringFromENV("ETH_RPC_URL", &Config.Ethereum.RPCURL)
	readStringFromENV("ETH_CHAIN_ID", &Config.Ethereum.ChainID)
	readInt64FromENV("ETH_RPC_TIMEOUT_MS", &Config.Ethereum.RPCTimeoutMillis)
	readInt64FromENV("ETH_START_BLOCK_NUMBER", &Config.Ethereum.StartBlockNumber)
	readInt64FromENV("ETH_CONFIRMATIONS", &Config.Ethereum.Confirmations)
	readStringFromENV("ETH_TOKEN_ADDRESS", &Config.Ethereum.TokenAddress)
	readStringFromENV("ETH_COLLECTIBLE_ADDRESS", &Config.Ethereum.CollectibleAddress)

	// custody
	readStringFromENV("CUSTODY_PRIVATE_KEY", &Config.Custody.PrivateKey)
	readStringFromENV("CUSTODY_MNEMONIC", &Config.Custody.Mnemonic)
	readStringFromENV("CUSTODY_HD_PATH", &Config.Custody.HDPath)
	readStringFromENV("CUSTODY_GCP_KMS_KEY_NAME", &Config.Custody.GcpKmsKeyName)

	// ledger
	if admins := os.Getenv("LEDGER_ADMIN_ADDRESSES"); admins != "" {
		Config.Ledger.AdminAddresses = strings.Split(admins, ",")
	}
	var maxCollectibles int64
	if readInt64FromENV("LEDGER_MAX_COLLECTIBLES_PER_LAUNCH", &maxCollectibles) && maxCollectibles > 0 {
		Config.Ledger.MaxCollectiblesPerLaunch = uint64(maxCollectibles)
	}

	// api
	readBoolFromENV("API_ENABLED", &Config.API.Enabled)
	readStringFromENV("API_LISTEN_ADDRESS", &Config.API.ListenAddress)
	readInt64FromENV("API_SIGNATURE_MAX_AGE_SECS", &Config.API.SignatureMaxAgeSec)

	// pool monitor
	readBoolFromENV("POOL_MONITOR_ENABLED", &Config.PoolMonitor.Enabled)
	readInt64FromENV("POOL_MONITOR_INTERVAL_MS", &Config.PoolMonitor.IntervalMillis)

	// health check
	readStringFromENV("HEALTH_CHECK_INSTANCE_ID", &Config.HealthCheck.InstanceID)
	readInt64FromENV("HEALTH_CHECK_INTERVAL_MS", &Config.HealthCheck.IntervalMillis)

	// google secret manager
	readBoolFromENV("GOOGLE_SECRET_MANAGER_ENABLED", &Config.GoogleSecretManager.Enabled)
	readStringFromENV("GOOGLE_PROJECT_ID", &Config.GoogleSecretManager.ProjectId)
	readStringFromENV("GOOGLE_MONGO_SECRET_NAME", &Config.GoogleSecretManager.MongoSecretName)
	readStringFromENV("GOOGLE_CUSTODY_SECRET_NAME", &Config.GoogleSecretManager.CustodySecretName)

	// logger
	readStringFromENV("LOGGER_LEVEL", &Config.Logger.Level)
}
