package keeper

import (
	"context"

	"cosmossdk.io/collections"

	"github.com/initia-labs/attestation/x/vaa/types"
)

type Querier struct {
	*Keeper
}

// NewQueryServer returns an implementation of the vaa query service.
func NewQueryServer(k *Keeper) Querier {
	return Querier{k}
}

// Params returns the module parameters.
func (q Querier) Params(ctx context.Context, _ *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	params, err := q.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	return &types.QueryParamsResponse{Params: params}, nil
}

// GuardianSet returns the guardian set with the requested index.
func (q Querier) GuardianSet(ctx context.Context, req *types.QueryGuardianSetRequest) (*types.QueryGuardianSetResponse, error) {
	gs, err := q.GetGuardianSet(ctx, req.Index)
	if err != nil {
		return nil, err
	}

	return q.guardianSetResponse(ctx, gs), nil
}

// CurrentGuardianSet returns the latest guardian set.
func (q Querier) CurrentGuardianSet(ctx context.Context, _ *types.QueryCurrentGuardianSetRequest) (*types.QueryGuardianSetResponse, error) {
	gs, err := q.GetCurrentGuardianSet(ctx)
	if err != nil {
		return nil, err
	}

	return q.guardianSetResponse(ctx, gs), nil
}

// GuardianSets lists guardian sets after StartAfter, at most Limit of them.
func (q Querier) GuardianSets(ctx context.Context, req *types.QueryGuardianSetsRequest) (*types.QueryGuardianSetsResponse, error) {
	ranger := new(collections.Range[uint32])
	if req.StartAfter != nil {
		ranger.StartExclusive(*req.StartAfter)
	}

	res := &types.QueryGuardianSetsResponse{}
	err := q.Keeper.GuardianSets.Walk(ctx, ranger, func(_ uint32, gs types.GuardianSet) (bool, error) {
		res.GuardianSets = append(res.GuardianSets, gs)
		return req.Limit != 0 && uint32(len(res.GuardianSets)) >= req.Limit, nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// VerifyVAA verifies an envelope against the current state without
// consuming it.
func (q Querier) VerifyVAA(ctx context.Context, req *types.QueryVerifyVAARequest) (*types.QueryVerifyVAAResponse, error) {
	v, err := q.ParseAndVerifyVAA(ctx, req.VAA)
	if err != nil {
		return nil, err
	}

	digest := v.SigningDigest()
	consumed, err := q.IsVAAConsumed(ctx, digest.Bytes())
	if err != nil {
		return nil, err
	}

	return &types.QueryVerifyVAAResponse{
		Digest:    digest.Bytes(),
		MessageID: v.MessageID(),
		Consumed:  consumed,
	}, nil
}

// Consumed reports whether a digest was consumed.
func (q Querier) Consumed(ctx context.Context, req *types.QueryConsumedRequest) (*types.QueryConsumedResponse, error) {
	consumed, err := q.IsVAAConsumed(ctx, req.Digest)
	if err != nil {
		return nil, err
	}

	return &types.QueryConsumedResponse{Consumed: consumed}, nil
}

func (q Querier) guardianSetResponse(ctx context.Context, gs types.GuardianSet) *types.QueryGuardianSetResponse {
	_, err := q.GetActiveGuardianSet(ctx, gs.Index)
	return &types.QueryGuardianSetResponse{
		GuardianSet: gs,
		Active:      err == nil,
		Quorum:      gs.Quorum(),
	}
}
