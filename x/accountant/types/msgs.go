package types

import (
	errorsmod "cosmossdk.io/errors"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

// MsgSubmitVAAs submits a batch of quorum signed envelopes. The batch is
// applied atomically.
type MsgSubmitVAAs struct {
	Sender string   `json:"sender"`
	VAAs   [][]byte `json:"vaas"`
}

// MsgSubmitVAAsResponse is the response of MsgSubmitVAAs.
type MsgSubmitVAAsResponse struct {
	Digests []vaatypes.HexBytes `json:"digests"`
}

// Validate performs basic validation.
func (m MsgSubmitVAAs) Validate() error {
	if m.Sender == "" {
		return sdkerrors.ErrInvalidRequest.Wrap("empty sender")
	}

	if len(m.VAAs) == 0 {
		return sdkerrors.ErrInvalidRequest.Wrap("no vaas")
	}

	return nil
}

// MsgSubmitObservations submits a batch of observations signed by a single
// guardian over SubmittedObservationsPrefix || Observations.
type MsgSubmitObservations struct {
	Sender           string             `json:"sender"`
	Observations     []byte             `json:"observations"`
	GuardianSetIndex uint32             `json:"guardian_set_index"`
	Signature        vaatypes.Signature `json:"signature"`
}

// MsgSubmitObservationsResponse carries one status per observation.
type MsgSubmitObservationsResponse struct {
	Responses []SubmitObservationResponse `json:"responses"`
}

// Validate performs basic validation.
func (m MsgSubmitObservations) Validate() error {
	if m.Sender == "" {
		return sdkerrors.ErrInvalidRequest.Wrap("empty sender")
	}

	if len(m.Observations) == 0 {
		return errorsmod.Wrap(ErrInvalidObservation, "empty observation batch")
	}

	return nil
}
