package types

// vaa module event types
const (
	EventTypeGuardianSetUpgrade = "guardian_set_upgrade"
	EventTypeVAAVerified        = "vaa_verified"
	EventTypeVAAConsumed        = "vaa_consumed"
	EventTypeGovernanceAction   = "governance_action"

	AttributeKeyGuardianSetIndex = "guardian_set_index"
	AttributeKeyPrevGuardianSet  = "prev_guardian_set_index"
	AttributeKeyExpirationTime   = "expiration_time"
	AttributeKeyNumGuardians     = "num_guardians"
	AttributeKeyDigest           = "digest"
	AttributeKeyMessageID        = "message_id"
	AttributeKeyModule           = "module"
	AttributeKeyAction           = "action"
	AttributeKeyTargetChain      = "target_chain"
)
