package keeper

import (
	"context"

	"cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/initia-labs/attestation/x/vaa/types"
)

type MsgServer struct {
	*Keeper
}

// NewMsgServerImpl return MsgServer instance
func NewMsgServerImpl(k *Keeper) MsgServer {
	return MsgServer{k}
}

// ExecuteGovernanceVAA executes a signed governance envelope.
func (ms MsgServer) ExecuteGovernanceVAA(ctx context.Context, req *types.MsgExecuteGovernanceVAA) (*types.MsgExecuteGovernanceVAAResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	packet, err := ms.Keeper.ExecuteGovernanceVAA(ctx, req.VAA)
	if err != nil {
		return nil, err
	}

	ms.Logger(ctx).Info("governance vaa executed", "module", packet.Module.String(), "action", packet.Action, "signer", req.Signer)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
		),
	)

	return &types.MsgExecuteGovernanceVAAResponse{
		Module: packet.Module.String(),
		Action: uint8(packet.Action),
	}, nil
}

// UpdateParams updates the module parameters.
func (ms MsgServer) UpdateParams(ctx context.Context, req *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if ms.authority != req.Authority {
		return nil, errors.Wrapf(sdkerrors.ErrUnauthorized, "invalid authority; expected %s, got %s", ms.authority, req.Authority)
	}

	if err := ms.SetParams(ctx, req.Params); err != nil {
		return nil, err
	}

	return &types.MsgUpdateParamsResponse{}, nil
}
