package types

// accountant module event types
const (
	EventTypeTransfer           = "transfer"
	EventTypeObservation        = "observation"
	EventTypeObservationError   = "observation_error"
	EventTypeModification       = "modify_balance"
	EventTypeRegisterChain      = "register_chain"
	EventTypeSubmitVAAs         = "submit_vaas"
	EventTypeSubmitObservations = "submit_observations"

	AttributeKeyKey            = "key"
	AttributeKeyAmount         = "amount"
	AttributeKeyTokenChain     = "token_chain"
	AttributeKeyTokenAddress   = "token_address"
	AttributeKeyRecipientChain = "recipient_chain"
	AttributeKeyDigest         = "vaa_digest"
	AttributeKeyError          = "error"
	AttributeKeyTxHash         = "tx_hash"
	AttributeKeySequence       = "sequence"
	AttributeKeyChainID        = "chain_id"
	AttributeKeyKind           = "kind"
	AttributeKeyReason         = "reason"
	AttributeKeyChain          = "chain"
	AttributeKeyEmitterAddress = "emitter_address"
	AttributeKeySender         = "sender"
	AttributeKeyCount          = "count"
)
