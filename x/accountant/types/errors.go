package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Accountant Errors
var (
	ErrUnregisteredEmitter      = errorsmod.Register(ModuleName, 2, "emitter is not registered")
	ErrDigestMismatch           = errorsmod.Register(ModuleName, 3, "digest mismatch for transfer key")
	ErrUnknownPayloadType       = errorsmod.Register(ModuleName, 4, "unknown token bridge payload")
	ErrDuplicateTransfer        = errorsmod.Register(ModuleName, 5, "transfer already committed")
	ErrInsufficientBalance      = errorsmod.Register(ModuleName, 6, "insufficient balance")
	ErrMissingWrappedAccount    = errorsmod.Register(ModuleName, 7, "cannot burn wrapped tokens without an existing wrapped account")
	ErrMissingNativeAccount     = errorsmod.Register(ModuleName, 8, "cannot unlock native tokens without an existing native account")
	ErrDuplicateModification    = errorsmod.Register(ModuleName, 9, "modification already processed")
	ErrNonMonotonicModification = errorsmod.Register(ModuleName, 10, "modification sequence is not increasing")
	ErrInvalidObservation       = errorsmod.Register(ModuleName, 11, "invalid observation")
	ErrBalanceOverflow          = errorsmod.Register(ModuleName, 12, "balance overflows 256 bits")
	ErrInvalidPayload           = errorsmod.Register(ModuleName, 13, "invalid payload")
	ErrTransferNotFound         = errorsmod.Register(ModuleName, 14, "transfer not found")
	ErrInvalidGenesis           = errorsmod.Register(ModuleName, 15, "invalid genesis")
)
