package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	commonutil "github.com/dan13ram/spaceship-staking/common"
)

const (
	HeaderAddress   = "X-Address"
	HeaderTimestamp = "X-Timestamp"
	HeaderSignature = "X-Signature"

	callerKey = "caller"
)

// RequestMessage is the text a caller signs (EIP-191) to authenticate a request.
func RequestMessage(method string, path string, timestamp int64, body []byte) []byte {
	message := strings.ToUpper(method) + "\n" + path + "\n" + strconv.FormatInt(timestamp, 10) + "\n"
	return append([]byte(message), body...)
}

// SignRequest returns the X-Signature header value for a request signed by signer.
func SignRequest(signer commonutil.Signer, method string, path string, timestamp int64, body []byte) (string, error) {
	signature, err := signer.EthSign(accounts.TextHash(RequestMessage(method, path, timestamp, body)))
	if err != nil {
		return "", err
	}
	return hexutil.Encode(signature), nil
}

func recoverSigner(message []byte, signatureHex string) (common.Address, error) {
	signature, err := hexutil.Decode(signatureHex)
	if err != nil {
		return common.Address{}, err
	}
	if len(signature) != crypto.SignatureLength {
		return common.Address{}, fiber.NewError(fiber.StatusUnauthorized, "invalid signature length")
	}
	if signature[crypto.RecoveryIDOffset] >= 27 {
		signature[crypto.RecoveryIDOffset] -= 27
	}
	publicKey, err := crypto.SigToPub(accounts.TextHash(message), signature)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*publicKey), nil
}

func unauthenticated(c *fiber.Ctx, message string) error {
	return errorJSON(c, fiber.StatusUnauthorized, CodeUnauthenticated, message)
}

// SignatureAuth resolves the caller of a request from its EIP-191 signature.
// A signed request is accepted once; repeating an action needs a fresh timestamp and signature.
func SignatureAuth(clock clockwork.Clock, maxAge time.Duration, nonces NonceStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		address := c.Get(HeaderAddress)
		if !commonutil.IsValidEthereumAddress(address) {
			return unauthenticated(c, "missing or invalid "+HeaderAddress)
		}

		timestamp, err := strconv.ParseInt(c.Get(HeaderTimestamp), 10, 64)
		if err != nil {
			return unauthenticated(c, "missing or invalid "+HeaderTimestamp)
		}
		age := clock.Since(time.Unix(timestamp, 0))
		if age > maxAge || age < -maxAge {
			return unauthenticated(c, "request expired")
		}

		message := RequestMessage(c.Method(), c.Path(), timestamp, c.Body())
		signer, err := recoverSigner(message, c.Get(HeaderSignature))
		if err != nil {
			log.WithError(err).Debug("[API] Invalid request signature")
			return unauthenticated(c, "invalid signature")
		}
		if signer != common.HexToAddress(address) {
			return unauthenticated(c, "signature does not match "+HeaderAddress)
		}

		fresh, err := nonces.Use(requestHash(signer, accounts.TextHash(message)), signer, time.Unix(timestamp, 0).Add(maxAge))
		if err != nil {
			log.WithError(err).Error("[API] Error recording request nonce")
			return errorJSON(c, fiber.StatusInternalServerError, CodeInternal, "could not record request")
		}
		if !fresh {
			log.WithField("caller", signer.Hex()).Warn("[API] Replayed request rejected")
			return unauthenticated(c, "request replayed")
		}

		c.Locals(callerKey, signer)
		return c.Next()
	}
}

func callerOf(c *fiber.Ctx) common.Address {
	caller, _ := c.Locals(callerKey).(common.Address)
	return caller
}
