package types

// QueryParamsRequest is the request type for the Params query.
type QueryParamsRequest struct{}

// QueryParamsResponse is the response type for the Params query.
type QueryParamsResponse struct {
	Params Params `json:"params"`
}

// QueryGuardianSetRequest selects a guardian set by index.
type QueryGuardianSetRequest struct {
	Index uint32 `json:"index"`
}

// QueryGuardianSetResponse returns one guardian set.
type QueryGuardianSetResponse struct {
	GuardianSet GuardianSet `json:"guardian_set"`
	Active      bool        `json:"active"`
	Quorum      int         `json:"quorum"`
}

// QueryCurrentGuardianSetRequest selects the latest guardian set.
type QueryCurrentGuardianSetRequest struct{}

// QueryGuardianSetsRequest lists guardian sets after StartAfter.
type QueryGuardianSetsRequest struct {
	StartAfter *uint32 `json:"start_after,omitempty"`
	Limit      uint32  `json:"limit,omitempty"`
}

// QueryGuardianSetsResponse lists guardian sets in index order.
type QueryGuardianSetsResponse struct {
	GuardianSets []GuardianSet `json:"guardian_sets"`
}

// QueryVerifyVAARequest checks an envelope without consuming it.
type QueryVerifyVAARequest struct {
	VAA []byte `json:"vaa"`
}

// QueryVerifyVAAResponse reports the envelope digest once verified.
type QueryVerifyVAAResponse struct {
	Digest    HexBytes `json:"digest"`
	MessageID string   `json:"message_id"`
	Consumed  bool     `json:"consumed"`
}

// QueryConsumedRequest asks whether a digest has been consumed.
type QueryConsumedRequest struct {
	Digest HexBytes `json:"digest"`
}

// QueryConsumedResponse reports whether a digest has been consumed.
type QueryConsumedResponse struct {
	Consumed bool `json:"consumed"`
}
