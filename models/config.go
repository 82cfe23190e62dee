package models

type Config struct {
	GoogleSecretManager GoogleSecretManagerConfig `yaml:"google_secret_manager" json:"google_secret_manager"`
	HealthCheck         HealthCheckConfig         `yaml:"health_check" json:"health_check"`
	Logger              LoggerConfig              `yaml:"logger" json:"logger"`
	MongoDB             MongoConfig               `yaml:"mongodb" json:"mongo_db"`
	Ethereum            EthereumConfig            `yaml:"ethereum" json:"ethereum"`
	Custody             CustodyConfig             `yaml:"custody" json:"custody"`
	Ledger              LedgerConfig              `yaml:"ledger" json:"ledger"`
	API                 APIConfig                 `yaml:"api" json:"api"`
	PoolMonitor         ServiceConfig             `yaml:"pool_monitor" json:"pool_monitor"`
}

type GoogleSecretManagerConfig struct {
	Enabled           bool   `yaml:"enabled" json:"enabled"`
	ProjectId         string `yaml:"project_id" json:"project_id"`
	MongoSecretName   string `yaml:"mongo_secret_name" json:"mongo_secret_name"`
	CustodySecretName string `yaml:"custody_secret_name" json:"custody_secret_name"`
}

type HealthCheckConfig struct {
	InstanceID     string `yaml:"instance_id" json:"instance_id"`
	IntervalMillis int64  `yaml:"interval_ms" json:"interval_ms"`
}

type LoggerConfig struct {
	Level string `yaml:"level" json:"level"`
}

type MongoConfig struct {
	URI           string `yaml:"uri" json:"uri"`
	Database      string `yaml:"database" json:"database"`
	TimeoutMillis int64  `yaml:"timeout_ms" json:"timeout_ms"`
	LockTTLSecs   uint   `yaml:"lock_ttl_secs" json:"lock_ttl_secs"`
}

type EthereumConfig struct {
	StartBlockNumber   int64  `yaml:"start_block_number" json:"start_block_number"`
	Confirmations      int64  `yaml:"confirmations" json:"confirmations"`
	RPCURL             string `yaml:"rpc_url" json:"rpcurl"`
	RPCTimeoutMillis   int64  `yaml:"rpc_timeout_ms" json:"rpc_timeout_ms"`
	ChainID            string `yaml:"chain_id" json:"chain_id"`
	TokenAddress       string `yaml:"token_address" json:"token_address"`
	CollectibleAddress string `yaml:"collectible_address" json:"collectible_address"`
}

// CustodyConfig holds the key of the account that escrows stakes and pays rewards.
// Exactly one of PrivateKey, Mnemonic or GcpKmsKeyName is used.
type CustodyConfig struct {
	PrivateKey    string `yaml:"private_key" json:"private_key"`
	Mnemonic      string `yaml:"mnemonic" json:"mnemonic"`
	HDPath        string `yaml:"hd_path" json:"hd_path"`
	GcpKmsKeyName string `yaml:"gcp_kms_key_name" json:"gcp_kms_key_name"`
}

type LedgerConfig struct {
	AdminAddresses           []string `yaml:"admin_addresses" json:"admin_addresses"`
	MaxCollectiblesPerLaunch uint64   `yaml:"max_collectibles_per_launch" json:"max_collectibles_per_launch"`
}

type APIConfig struct {
	Enabled            bool   `yaml:"enabled" json:"enabled"`
	ListenAddress      string `yaml:"listen_address" json:"listen_address"`
	SignatureMaxAgeSec int64  `yaml:"signature_max_age_secs" json:"signature_max_age_secs"`
}

type ServiceConfig struct {
	Enabled        bool  `yaml:"enabled" json:"enabled"`
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
}
