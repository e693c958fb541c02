package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/attestation/x/accountant/types"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

func (k Keeper) handleRegisterChain(ctx context.Context, _ *vaatypes.VAA, packet *vaatypes.GovernancePacket) error {
	r, err := types.ParseRegisterChain(packet.Payload)
	if err != nil {
		return err
	}

	if err := k.SetChainRegistration(ctx, r.Chain, r.EmitterAddress); err != nil {
		return err
	}

	k.Logger(ctx).Info("chain registered", "chain", r.Chain, "emitter", r.EmitterAddress.String())
	telemetry.IncrCounter(1, types.ModuleName, "chain_registered")

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRegisterChain,
			sdk.NewAttribute(types.AttributeKeyChain, r.Chain.String()),
			sdk.NewAttribute(types.AttributeKeyEmitterAddress, r.EmitterAddress.String()),
		),
	)

	return nil
}

// handleModifyBalance applies a ModifyBalance action. Unlike chain
// registrations, balance modifications must name this chain explicitly.
func (k Keeper) handleModifyBalance(ctx context.Context, _ *vaatypes.VAA, packet *vaatypes.GovernancePacket) error {
	if packet.Chain == vaatypes.ChainIDUnset {
		return errorsmod.Wrap(vaatypes.ErrWrongTargetChain, "modify balance must target this chain")
	}

	m, err := types.ParseModifyBalance(packet.Payload)
	if err != nil {
		return err
	}

	return k.ModifyBalance(ctx, m)
}

// ModifyBalance adds to or subtracts from one account balance. Every
// sequence is applied once and sequences must increase.
func (k Keeper) ModifyBalance(ctx context.Context, m types.Modification) error {
	found, err := k.Modifications.Has(ctx, m.Sequence)
	if err != nil {
		return err
	} else if found {
		return errorsmod.Wrapf(types.ErrDuplicateModification, "sequence %d", m.Sequence)
	}

	last, found, err := k.lastModificationSequence(ctx)
	if err != nil {
		return err
	} else if found && m.Sequence < last {
		return errorsmod.Wrapf(types.ErrNonMonotonicModification, "sequence %d, last %d", m.Sequence, last)
	}

	if m.Amount.IsNil() {
		m.Amount = math.ZeroUint()
	}

	balance, _, err := k.GetBalance(ctx, m.AccountKey())
	if err != nil {
		return err
	}

	switch m.Kind {
	case types.ModificationKindAdd:
		balance, err = types.CheckedAdd(balance, m.Amount)
	case types.ModificationKindSub:
		balance, err = types.CheckedSub(balance, m.Amount)
	default:
		err = errorsmod.Wrapf(types.ErrInvalidPayload, "unsupported modification kind %s", m.Kind)
	}
	if err != nil {
		return err
	}

	if err := k.Accounts.Set(ctx, m.AccountKey(), balance); err != nil {
		return err
	}

	if err := k.Modifications.Set(ctx, m.Sequence, m); err != nil {
		return err
	}

	k.Logger(ctx).Info("balance modified", "sequence", m.Sequence, "account", m.AccountKey().String(), "kind", m.Kind.String(), "amount", m.Amount.String(), "reason", m.Reason)
	telemetry.IncrCounter(1, types.ModuleName, "modification")

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeModification,
			sdk.NewAttribute(types.AttributeKeySequence, strconv.FormatUint(m.Sequence, 10)),
			sdk.NewAttribute(types.AttributeKeyChainID, m.ChainID.String()),
			sdk.NewAttribute(types.AttributeKeyTokenChain, m.TokenChain.String()),
			sdk.NewAttribute(types.AttributeKeyTokenAddress, m.TokenAddress.String()),
			sdk.NewAttribute(types.AttributeKeyKind, m.Kind.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, m.Amount.String()),
			sdk.NewAttribute(types.AttributeKeyReason, m.Reason),
		),
	)

	return nil
}

func (k Keeper) lastModificationSequence(ctx context.Context) (uint64, bool, error) {
	iter, err := k.Modifications.Iterate(ctx, new(collections.Range[uint64]).Descending())
	if err != nil {
		return 0, false, err
	}
	defer iter.Close()

	if !iter.Valid() {
		return 0, false, nil
	}

	sequence, err := iter.Key()
	if err != nil {
		return 0, false, err
	}

	return sequence, true, nil
}
