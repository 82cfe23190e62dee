package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dan13ram/spaceship-staking/api"
	"github.com/dan13ram/spaceship-staking/common"
)

// Prints the custody address behind a GCP KMS key and the headers of a signed API request.
func main() {
	GoogleKeyName := os.Getenv("GCP_KMS_KEY_NAME")

	fmt.Println("Google KMS Key Name: ", GoogleKeyName)
	if GoogleKeyName == "" {
		log.Fatalf("GCP KMS Key Name not set")
	}

	signer, err := common.NewGcpKmsSigner(GoogleKeyName)
	if err != nil {
		log.Fatalf("failed to create GCP KMS signer: %v", err)
	}
	defer signer.Destroy()

	fmt.Println("Eth Address: ", signer.EthAddress())

	method := "POST"
	path := "/missions/0/disable"
	if len(os.Args) > 2 {
		method = os.Args[1]
		path = os.Args[2]
	}
	timestamp := time.Now().Unix()

	signature, err := api.SignRequest(signer, method, path, timestamp, nil)
	if err != nil {
		log.Fatalf("failed to sign request: %v", err)
	}

	fmt.Printf("%s %s\n", method, path)
	fmt.Printf("%s: %s\n", api.HeaderAddress, signer.EthAddress().Hex())
	fmt.Printf("%s: %d\n", api.HeaderTimestamp, timestamp)
	fmt.Printf("%s: %s\n", api.HeaderSignature, signature)
}
