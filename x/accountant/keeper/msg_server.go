package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/attestation/x/accountant/types"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

type MsgServer struct {
	*Keeper
}

// NewMsgServerImpl return MsgServer instance
func NewMsgServerImpl(k *Keeper) MsgServer {
	return MsgServer{k}
}

// SubmitVAAs applies a batch of signed envelopes atomically.
func (ms MsgServer) SubmitVAAs(ctx context.Context, req *types.MsgSubmitVAAs) (*types.MsgSubmitVAAsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	digests, err := ms.Keeper.SubmitVAAs(ctx, req.VAAs)
	if err != nil {
		return nil, err
	}

	ms.Logger(ctx).Info("vaas submitted", "count", len(digests), "sender", req.Sender)
	emitMessageEvent(ctx)

	res := &types.MsgSubmitVAAsResponse{Digests: make([]vaatypes.HexBytes, len(digests))}
	for i, digest := range digests {
		res.Digests[i] = digest
	}

	return res, nil
}

// SubmitObservations records observations signed by one guardian.
func (ms MsgServer) SubmitObservations(ctx context.Context, req *types.MsgSubmitObservations) (*types.MsgSubmitObservationsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	responses, err := ms.Keeper.SubmitObservations(ctx, req.Observations, req.GuardianSetIndex, req.Signature)
	if err != nil {
		return nil, err
	}

	ms.Logger(ctx).Info("observations submitted", "count", len(responses), "guardian", req.Signature.Index, "sender", req.Sender)
	emitMessageEvent(ctx)

	return &types.MsgSubmitObservationsResponse{Responses: responses}, nil
}

func emitMessageEvent(ctx context.Context) {
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
		),
	)
}
