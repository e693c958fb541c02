package types

import (
	errorsmod "cosmossdk.io/errors"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// MsgExecuteGovernanceVAA submits a signed governance envelope to the core module.
type MsgExecuteGovernanceVAA struct {
	Signer string `json:"signer"`
	VAA    []byte `json:"vaa"`
}

// MsgExecuteGovernanceVAAResponse is the response of MsgExecuteGovernanceVAA.
type MsgExecuteGovernanceVAAResponse struct {
	Module string `json:"module"`
	Action uint8  `json:"action"`
}

// Validate performs basic validation.
func (m MsgExecuteGovernanceVAA) Validate() error {
	if len(m.VAA) < MinVAALength {
		return errorsmod.Wrapf(ErrMalformedEnvelope, "length %d", len(m.VAA))
	}

	return nil
}

// MsgUpdateParams updates module parameters. Only the authority may submit it.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

// MsgUpdateParamsResponse is the response of MsgUpdateParams.
type MsgUpdateParamsResponse struct{}

// Validate performs basic validation.
func (m MsgUpdateParams) Validate() error {
	if m.Authority == "" {
		return sdkerrors.ErrInvalidRequest.Wrap("empty authority")
	}

	if err := m.Params.Validate(); err != nil {
		return sdkerrors.ErrInvalidRequest.Wrap(err.Error())
	}

	return nil
}
