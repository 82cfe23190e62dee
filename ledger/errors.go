package ledger

import (
	"errors"
)

// Code identifies a ledger failure. Codes are stable and exposed to clients.
type Code string

const (
	CodeUnauthorized           Code = "UNAUTHORIZED"
	CodeInvalidBoostConfig     Code = "INVALID_BOOST_CONFIG"
	CodeInvalidMissionWindow   Code = "INVALID_MISSION_WINDOW"
	CodeInvalidAmount          Code = "INVALID_AMOUNT"
	CodeNotFound               Code = "NOT_FOUND"
	CodeIndexOutOfRange        Code = "INDEX_OUT_OF_RANGE"
	CodeMissionInactive        Code = "MISSION_INACTIVE"
	CodeMissionNotStarted      Code = "MISSION_NOT_STARTED"
	CodeMissionClosed          Code = "MISSION_CLOSED"
	CodeInvalidShipCount       Code = "INVALID_SHIP_COUNT"
	CodeDuplicatePayment       Code = "DUPLICATE_PAYMENT"
	CodeClaimWindowNotOpen     Code = "CLAIM_WINDOW_NOT_OPEN"
	CodeAlreadyClaimed         Code = "ALREADY_CLAIMED"
	CodeRewardNotYetClaimed    Code = "REWARD_NOT_YET_CLAIMED"
	CodeAlreadyMinted          Code = "ALREADY_MINTED"
	CodeInsufficientRewardPool Code = "INSUFFICIENT_REWARD_POOL"
	CodeMintUnauthorized       Code = "MINT_UNAUTHORIZED"
	CodeTransferFailed         Code = "TRANSFER_FAILED"
	CodeMintFailed             Code = "MINT_FAILED"
	CodeBusy                   Code = "BUSY"
	CodeStorage                Code = "STORAGE"
)

// Error is a ledger failure carrying a machine readable code.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func wrapError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func withMetadata(err *Error, metadata map[string]string) *Error {
	return &Error{Code: err.Code, Message: err.Message, Metadata: metadata, Cause: err.Cause}
}

var (
	ErrUnauthorized           = newError(CodeUnauthorized, "caller is not an admin")
	ErrInvalidBoostConfig     = newError(CodeInvalidBoostConfig, "boost thresholds must be 4 strictly increasing positive amounts")
	ErrInvalidMissionWindow   = newError(CodeInvalidMissionWindow, "mission start must be before its launch deadline")
	ErrInvalidAmount          = newError(CodeInvalidAmount, "amount must be a non-negative integer")
	ErrNotFound               = newError(CodeNotFound, "not found")
	ErrIndexOutOfRange        = newError(CodeIndexOutOfRange, "launch index out of range")
	ErrMissionInactive        = newError(CodeMissionInactive, "mission must be active")
	ErrMissionNotStarted      = newError(CodeMissionNotStarted, "mission has not started yet")
	ErrMissionClosed          = newError(CodeMissionClosed, "mission has been already launched")
	ErrInvalidShipCount       = newError(CodeInvalidShipCount, "ship count must be at least 1")
	ErrDuplicatePayment       = newError(CodeDuplicatePayment, "payment reference already backs a launch")
	ErrClaimWindowNotOpen     = newError(CodeClaimWindowNotOpen, "claim window is not open yet")
	ErrAlreadyClaimed         = newError(CodeAlreadyClaimed, "reward already claimed for this launch")
	ErrRewardNotYetClaimed    = newError(CodeRewardNotYetClaimed, "reward must be claimed before tokens")
	ErrAlreadyMinted          = newError(CodeAlreadyMinted, "tokens already minted for this launch")
	ErrInsufficientRewardPool = newError(CodeInsufficientRewardPool, "reward pool cannot cover the payout")
	ErrMintUnauthorized       = newError(CodeMintUnauthorized, "custody is not allowed to mint collectibles")
	ErrTransferFailed         = newError(CodeTransferFailed, "token transfer failed")
	ErrMintFailed             = newError(CodeMintFailed, "collectible mint failed")
	ErrBusy                   = newError(CodeBusy, "resource is locked")
	ErrStorage                = newError(CodeStorage, "storage failure")
)

// CodeOf returns the code of the first ledger error in err's chain, or an empty code.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
