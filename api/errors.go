package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/spaceship-staking/ledger"
)

const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeInvalidPayment  = "INVALID_PAYMENT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeInternal        = "INTERNAL"
)

var statusByCode = map[ledger.Code]int{
	ledger.CodeUnauthorized:           fiber.StatusForbidden,
	ledger.CodeInvalidBoostConfig:     fiber.StatusBadRequest,
	ledger.CodeInvalidMissionWindow:   fiber.StatusBadRequest,
	ledger.CodeInvalidAmount:          fiber.StatusBadRequest,
	ledger.CodeInvalidShipCount:       fiber.StatusBadRequest,
	ledger.CodeNotFound:               fiber.StatusNotFound,
	ledger.CodeIndexOutOfRange:        fiber.StatusNotFound,
	ledger.CodeMissionInactive:        fiber.StatusConflict,
	ledger.CodeMissionNotStarted:      fiber.StatusConflict,
	ledger.CodeMissionClosed:          fiber.StatusConflict,
	ledger.CodeDuplicatePayment:       fiber.StatusConflict,
	ledger.CodeClaimWindowNotOpen:     fiber.StatusConflict,
	ledger.CodeAlreadyClaimed:         fiber.StatusConflict,
	ledger.CodeRewardNotYetClaimed:    fiber.StatusConflict,
	ledger.CodeAlreadyMinted:          fiber.StatusConflict,
	ledger.CodeInsufficientRewardPool: fiber.StatusServiceUnavailable,
	ledger.CodeMintUnauthorized:       fiber.StatusServiceUnavailable,
	ledger.CodeTransferFailed:         fiber.StatusBadGateway,
	ledger.CodeMintFailed:             fiber.StatusBadGateway,
	ledger.CodeBusy:                   fiber.StatusLocked,
	ledger.CodeStorage:                fiber.StatusInternalServerError,
}

type ErrorResponse struct {
	Code     string            `json:"code"`
	Error    string            `json:"error"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func errorJSON(c *fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(ErrorResponse{Code: code, Error: message})
}

// ErrorHandler renders ledger errors with their code so clients can tell failures apart.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ledgerErr *ledger.Error
	if errors.As(err, &ledgerErr) {
		status, ok := statusByCode[ledgerErr.Code]
		if !ok {
			status = fiber.StatusInternalServerError
		}
		if status >= fiber.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Path()).Error("[API] Request failed")
		}
		return c.Status(status).JSON(ErrorResponse{
			Code:     string(ledgerErr.Code),
			Error:    ledgerErr.Error(),
			Metadata: ledgerErr.Metadata,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code := CodeBadRequest
		switch {
		case fiberErr.Code == fiber.StatusNotFound:
			code = string(ledger.CodeNotFound)
		case fiberErr.Code >= fiber.StatusInternalServerError:
			code = CodeInternal
		}
		return errorJSON(c, fiberErr.Code, code, fiberErr.Message)
	}

	log.WithError(err).WithField("path", c.Path()).Error("[API] Unexpected error")
	return errorJSON(c, fiber.StatusInternalServerError, CodeInternal, "internal error")
}
