package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/vaa module sentinel errors
var (
	ErrMalformedEnvelope        = errorsmod.Register(ModuleName, 2, "malformed envelope")
	ErrUnknownGuardianSet       = errorsmod.Register(ModuleName, 3, "unknown guardian set")
	ErrGuardianSetExpired       = errorsmod.Register(ModuleName, 4, "guardian set expired")
	ErrInsufficientSignatures   = errorsmod.Register(ModuleName, 5, "insufficient signatures")
	ErrNonMonotonicIndex        = errorsmod.Register(ModuleName, 6, "guardian signatures are not strictly increasing by index")
	ErrIndexOutOfRange          = errorsmod.Register(ModuleName, 7, "guardian index out of range")
	ErrSignatureMismatch        = errorsmod.Register(ModuleName, 8, "signature does not match guardian key")
	ErrAlreadyExecuted          = errorsmod.Register(ModuleName, 9, "already executed")
	ErrNonSequentialGuardianSet = errorsmod.Register(ModuleName, 10, "guardian set index must increase by exactly one")
	ErrUnknownGovernanceModule  = errorsmod.Register(ModuleName, 11, "unknown governance module")
	ErrUnknownGovernanceAction  = errorsmod.Register(ModuleName, 12, "unknown governance action")
	ErrWrongTargetChain         = errorsmod.Register(ModuleName, 13, "governance action targets another chain")
	ErrInvalidGovernanceEmitter = errorsmod.Register(ModuleName, 14, "invalid governance emitter")
	ErrInvalidGuardianSet       = errorsmod.Register(ModuleName, 15, "invalid guardian set")
	ErrInvalidGovernancePacket  = errorsmod.Register(ModuleName, 16, "invalid governance packet")
	ErrUnknownSignatureScheme   = errorsmod.Register(ModuleName, 17, "unknown signature scheme")
	ErrInvalidSignature         = errorsmod.Register(ModuleName, 18, "invalid signature")
	ErrInvalidParams            = errorsmod.Register(ModuleName, 19, "invalid params")
)
