package keeper

import (
	"context"
	"errors"
	"strconv"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/attestation/x/vaa/types"
)

// GetGuardianSet returns the guardian set stored under index.
func (k Keeper) GetGuardianSet(ctx context.Context, index uint32) (types.GuardianSet, error) {
	gs, err := k.GuardianSets.Get(ctx, index)
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return types.GuardianSet{}, errorsmod.Wrapf(types.ErrUnknownGuardianSet, "index %d", index)
	} else if err != nil {
		return types.GuardianSet{}, err
	}

	return gs, nil
}

// GetActiveGuardianSet returns the guardian set stored under index if it
// is still active at the block time.
func (k Keeper) GetActiveGuardianSet(ctx context.Context, index uint32) (types.GuardianSet, error) {
	gs, err := k.GetGuardianSet(ctx, index)
	if err != nil {
		return types.GuardianSet{}, err
	}

	now := sdk.UnwrapSDKContext(ctx).BlockTime()
	if !gs.IsActive(now) {
		return types.GuardianSet{}, errorsmod.Wrapf(types.ErrGuardianSetExpired, "index %d expired at %d", index, gs.ExpirationTime)
	}

	return gs, nil
}

// GetCurrentGuardianSet returns the latest guardian set.
func (k Keeper) GetCurrentGuardianSet(ctx context.Context) (types.GuardianSet, error) {
	index, err := k.CurrentGuardianSetIndex.Get(ctx)
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return types.GuardianSet{}, errorsmod.Wrap(types.ErrUnknownGuardianSet, "no guardian set installed")
	} else if err != nil {
		return types.GuardianSet{}, err
	}

	return k.GetGuardianSet(ctx, index)
}

// IterateGuardianSets walks guardian sets in index order.
func (k Keeper) IterateGuardianSets(ctx context.Context, cb func(gs types.GuardianSet) (stop bool, err error)) error {
	return k.GuardianSets.Walk(ctx, nil, func(_ uint32, gs types.GuardianSet) (bool, error) {
		return cb(gs)
	})
}

// AppendGuardianSet stores gs as the current guardian set without touching
// its predecessor. It is used to seed the registry from genesis.
func (k Keeper) AppendGuardianSet(ctx context.Context, gs types.GuardianSet) error {
	if err := gs.Validate(); err != nil {
		return err
	}

	found, err := k.GuardianSets.Has(ctx, gs.Index)
	if err != nil {
		return err
	} else if found {
		return errorsmod.Wrapf(types.ErrInvalidGuardianSet, "guardian set %d already exists", gs.Index)
	}

	if err := k.GuardianSets.Set(ctx, gs.Index, gs); err != nil {
		return err
	}

	return k.CurrentGuardianSetIndex.Set(ctx, gs.Index)
}

// RotateGuardianSet installs next as the current guardian set. The index
// must be exactly one above the current one; the current set expires after
// the configured grace period so envelopes in flight stay verifiable.
func (k Keeper) RotateGuardianSet(ctx context.Context, next types.GuardianSet) error {
	current, err := k.GetCurrentGuardianSet(ctx)
	if err != nil {
		return err
	}

	if next.Index != current.Index+1 {
		return errorsmod.Wrapf(types.ErrNonSequentialGuardianSet, "current %d, got %d", current.Index, next.Index)
	}

	if err := next.Validate(); err != nil {
		return err
	}

	params, err := k.Params.Get(ctx)
	if err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := uint64(sdkCtx.BlockTime().Unix())

	current.ExpirationTime = now + params.GuardianSetGracePeriod
	if err := k.GuardianSets.Set(ctx, current.Index, current); err != nil {
		return err
	}

	next.CreationTime = now
	next.ExpirationTime = 0
	if err := k.GuardianSets.Set(ctx, next.Index, next); err != nil {
		return err
	}

	if err := k.CurrentGuardianSetIndex.Set(ctx, next.Index); err != nil {
		return err
	}

	k.Logger(ctx).Info("guardian set rotated", "old", current.Index, "new", next.Index, "guardians", len(next.Keys), "old expires", current.ExpirationTime)
	telemetry.IncrCounter(1, types.ModuleName, "guardian_set_rotated")

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeGuardianSetUpgrade,
			sdk.NewAttribute(types.AttributeKeyGuardianSetIndex, strconv.FormatUint(uint64(next.Index), 10)),
			sdk.NewAttribute(types.AttributeKeyPrevGuardianSet, strconv.FormatUint(uint64(current.Index), 10)),
			sdk.NewAttribute(types.AttributeKeyExpirationTime, strconv.FormatUint(current.ExpirationTime, 10)),
			sdk.NewAttribute(types.AttributeKeyNumGuardians, strconv.Itoa(len(next.Keys))),
		),
	)

	return nil
}
