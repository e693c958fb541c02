package types

import (
	"bytes"
	"encoding/json"

	"github.com/bits-and-blooms/bitset"
	"github.com/ethereum/go-ethereum/common"

	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

// Observation is a single guardian's report of a token bridge message,
// submitted before any quorum exists.
type Observation struct {
	TxHash           []byte           `json:"tx_hash"`
	Timestamp        uint32           `json:"timestamp"`
	Nonce            uint32           `json:"nonce"`
	EmitterChain     vaatypes.ChainID `json:"emitter_chain"`
	EmitterAddress   vaatypes.Address `json:"emitter_address"`
	Sequence         uint64           `json:"sequence"`
	ConsistencyLevel uint8            `json:"consistency_level"`
	Payload          []byte           `json:"payload"`
}

// Key returns the transfer key of the observed message.
func (o Observation) Key() TransferKey {
	return NewTransferKey(o.EmitterChain, o.EmitterAddress, o.Sequence)
}

// Body returns the envelope body the observation describes.
func (o Observation) Body() *vaatypes.VAA {
	return &vaatypes.VAA{
		Version:          vaatypes.SupportedVAAVersion,
		Timestamp:        o.Timestamp,
		Nonce:            o.Nonce,
		EmitterChain:     o.EmitterChain,
		EmitterAddress:   o.EmitterAddress,
		Sequence:         o.Sequence,
		ConsistencyLevel: o.ConsistencyLevel,
		Payload:          o.Payload,
	}
}

// Digest returns the digest guardians would sign for the observed message.
func (o Observation) Digest() common.Hash {
	return o.Body().SigningDigest()
}

// ParseObservations decodes a JSON observation batch.
func ParseObservations(bz []byte) ([]Observation, error) {
	var observations []Observation
	if err := json.Unmarshal(bz, &observations); err != nil {
		return nil, err
	}

	return observations, nil
}

// ObservationStatus is the per observation outcome of a submission.
type ObservationStatus struct {
	Type string `json:"type"`
	Data string `json:"data,omitempty"`
}

const (
	ObservationStatusPending   = "pending"
	ObservationStatusCommitted = "committed"
	ObservationStatusError     = "error"
)

// StatusPending is returned while quorum has not been reached.
func StatusPending() ObservationStatus {
	return ObservationStatus{Type: ObservationStatusPending}
}

// StatusCommitted is returned once the transfer is committed.
func StatusCommitted() ObservationStatus {
	return ObservationStatus{Type: ObservationStatusCommitted}
}

// StatusError reports a failed observation.
func StatusError(err error) ObservationStatus {
	return ObservationStatus{Type: ObservationStatusError, Data: err.Error()}
}

// SubmitObservationResponse pairs an observation key with its outcome.
type SubmitObservationResponse struct {
	Key    TransferKey       `json:"key"`
	Status ObservationStatus `json:"status"`
}

// PendingData collects guardian signatures for one observed digest.
type PendingData struct {
	Digest           vaatypes.HexBytes `json:"digest"`
	TxHash           []byte            `json:"tx_hash"`
	EmitterChain     vaatypes.ChainID  `json:"emitter_chain"`
	GuardianSetIndex uint32            `json:"guardian_set_index"`
	Signatures       *bitset.BitSet    `json:"signatures"`
}

// NewPendingData creates an entry without signatures.
func NewPendingData(digest, txHash []byte, emitterChain vaatypes.ChainID, gsIndex uint32) PendingData {
	return PendingData{
		Digest:           digest,
		TxHash:           txHash,
		EmitterChain:     emitterChain,
		GuardianSetIndex: gsIndex,
		Signatures:       bitset.New(vaatypes.MaxGuardians),
	}
}

// Matches reports whether the entry tracks the given observation.
func (d PendingData) Matches(digest, txHash []byte, gsIndex uint32) bool {
	return d.GuardianSetIndex == gsIndex && bytes.Equal(d.Digest, digest) && bytes.Equal(d.TxHash, txHash)
}

// AddSignature records a signature from guardian index.
func (d *PendingData) AddSignature(index uint8) {
	if d.Signatures == nil {
		d.Signatures = bitset.New(vaatypes.MaxGuardians)
	}

	d.Signatures.Set(uint(index))
}

// HasSignature reports whether guardian index signed.
func (d PendingData) HasSignature(index uint8) bool {
	return d.Signatures != nil && d.Signatures.Test(uint(index))
}

// NumSignatures returns the number of distinct signers.
func (d PendingData) NumSignatures() int {
	if d.Signatures == nil {
		return 0
	}

	return int(d.Signatures.Count())
}

// PendingTransfer lists the pending entries of one transfer key.
type PendingTransfer struct {
	Key  TransferKey   `json:"key"`
	Data []PendingData `json:"data"`
}
