package app

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/spaceship-staking/common"
)

// CreateCustodySigner loads the signer of the account that holds escrowed stakes and the reward pool
func CreateCustodySigner() (common.Signer, error) {
	config := Config.Custody
	switch {
	case config.PrivateKey != "":
		log.Debug("[SIGNER] Using custody private key")
		signer, err := common.NewPrivateKeySigner(config.PrivateKey)
		if err != nil {
			return nil, err
		}
		return signer, nil
	case config.Mnemonic != "":
		log.Debug("[SIGNER] Using custody mnemonic with path ", config.HDPath)
		signer, err := common.NewMnemonicSigner(config.Mnemonic, config.HDPath)
		if err != nil {
			return nil, err
		}
		return signer, nil
	case config.GcpKmsKeyName != "":
		log.Debug("[SIGNER] Using custody gcp kms key")
		return common.NewGcpKmsSigner(config.GcpKmsKeyName)
	}
	return nil, fmt.Errorf("private key, mnemonic and gcp kms key name are all empty")
}
