package types

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the codespace of every hub error.
const ModuleName = "lsthub"

var (
	ErrUnauthorizedNotOwner    = errorsmod.Register(ModuleName, 2, "unauthorized: sender is not owner")
	ErrUnauthorizedNotOperator = errorsmod.Register(ModuleName, 3, "unauthorized: sender is not operator")
	ErrUnauthorizedNotNewOwner = errorsmod.Register(ModuleName, 4, "unauthorized: sender is not new owner")
	ErrCallbackNotSelf         = errorsmod.Register(ModuleName, 5, "callbacks can only be invoked by the hub itself")

	ErrCantBeZero                  = errorsmod.Register(ModuleName, 6, "value can't be zero")
	ErrValidatorAlreadyWhitelisted = errorsmod.Register(ModuleName, 7, "validator is already whitelisted")
	ErrValidatorNotWhitelisted     = errorsmod.Register(ModuleName, 8, "validator is not whitelisted")
	ErrValidatorNotFound           = errorsmod.Register(ModuleName, 9, "validator does not exist on the ledger")
	ErrRewardFeeTooHigh            = errorsmod.Register(ModuleName, 10, "protocol reward fee exceeds the cap")
	ErrSwapFromNotAllowed          = errorsmod.Register(ModuleName, 11, "swapping from this denom is not allowed")
	ErrDonationsDisabled           = errorsmod.Register(ModuleName, 12, "donations are disabled")

	ErrOverflow  = errorsmod.Register(ModuleName, 13, "arithmetic overflow")
	ErrUnderflow = errorsmod.Register(ModuleName, 14, "arithmetic underflow")

	ErrSubmitBatchTooEarly = errorsmod.Register(ModuleName, 15, "batch can only be submitted after its start time")

	ErrBatchNotFound     = errorsmod.Register(ModuleName, 16, "batch not found")
	ErrNoTokensAvailable = errorsmod.Register(ModuleName, 17, "no tokens available")

	ErrInvalidFunds        = errorsmod.Register(ModuleName, 18, "invalid funds")
	ErrNoValidators        = errorsmod.Register(ModuleName, 19, "validator set can't be empty")
	ErrInvalidStrategy     = errorsmod.Register(ModuleName, 20, "invalid delegation strategy")
	ErrNoOwnerProposal     = errorsmod.Register(ModuleName, 21, "no ownership proposal")
	ErrUnknownMsg          = errorsmod.Register(ModuleName, 22, "unknown message")
	ErrAlreadyInstantiated = errorsmod.Register(ModuleName, 23, "hub is already instantiated")

	ErrDivisionByZero = errorsmod.Register(ModuleName, 24, "division by zero")
	ErrInvalidRequest = errorsmod.Register(ModuleName, 25, "invalid request")
)

// ErrorKind groups registered errors the way callers react to them.
type ErrorKind string

const (
	KindUnknown       ErrorKind = "unknown"
	KindAuthorization ErrorKind = "authorization"
	KindValidation    ErrorKind = "validation"
	KindArithmetic    ErrorKind = "arithmetic"
	KindTemporal      ErrorKind = "temporal"
	KindState         ErrorKind = "state"
)

func (k ErrorKind) String() string {
	return string(k)
}

var errorKinds = map[uint32]ErrorKind{
	ErrUnauthorizedNotOwner.ABCICode():        KindAuthorization,
	ErrUnauthorizedNotOperator.ABCICode():     KindAuthorization,
	ErrUnauthorizedNotNewOwner.ABCICode():     KindAuthorization,
	ErrCallbackNotSelf.ABCICode():             KindAuthorization,
	ErrCantBeZero.ABCICode():                  KindValidation,
	ErrValidatorAlreadyWhitelisted.ABCICode(): KindValidation,
	ErrValidatorNotWhitelisted.ABCICode():     KindValidation,
	ErrValidatorNotFound.ABCICode():           KindValidation,
	ErrRewardFeeTooHigh.ABCICode():            KindValidation,
	ErrSwapFromNotAllowed.ABCICode():          KindValidation,
	ErrDonationsDisabled.ABCICode():           KindValidation,
	ErrInvalidFunds.ABCICode():                KindValidation,
	ErrNoValidators.ABCICode():                KindValidation,
	ErrInvalidStrategy.ABCICode():             KindValidation,
	ErrUnknownMsg.ABCICode():                  KindValidation,
	ErrInvalidRequest.ABCICode():              KindValidation,
	ErrOverflow.ABCICode():                    KindArithmetic,
	ErrUnderflow.ABCICode():                   KindArithmetic,
	ErrDivisionByZero.ABCICode():              KindArithmetic,
	ErrSubmitBatchTooEarly.ABCICode():         KindTemporal,
	ErrBatchNotFound.ABCICode():               KindState,
	ErrNoTokensAvailable.ABCICode():           KindState,
	ErrNoOwnerProposal.ABCICode():             KindState,
	ErrAlreadyInstantiated.ABCICode():         KindState,
}

// KindOf returns the kind of a (possibly wrapped) hub error.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	if codespace != ModuleName {
		return KindUnknown
	}
	if kind, ok := errorKinds[code]; ok {
		return kind
	}
	return KindUnknown
}
